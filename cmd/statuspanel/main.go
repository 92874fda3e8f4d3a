package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/statuspanel/pkg/config"
	"github.com/robotalks/statuspanel/pkg/console"
	"github.com/robotalks/statuspanel/pkg/display"
	"github.com/robotalks/statuspanel/pkg/display/window"
	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/env"
	"github.com/robotalks/statuspanel/pkg/panel"
)

var (
	configFile  string
	writeConfig string
	listPorts   bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "YAML configuration file.")
	flag.StringVar(&writeConfig, "write-config", "", "Write the effective configuration to a file and exit.")
	flag.BoolVar(&listPorts, "ports", false, "List serial ports and exit.")
	config.Default().SetupFlags(flag.CommandLine)
}

// loadConfig loads the configuration file and applies the flags given on
// the command line over it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	fs := flag.NewFlagSet("overrides", flag.ContinueOnError)
	cfg.SetupFlags(fs)
	flag.Visit(func(f *flag.Flag) {
		if fs.Lookup(f.Name) != nil {
			fs.Set(f.Name, f.Value.String())
		}
	})
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if listPorts {
		ports, err := console.Ports()
		if err != nil {
			log.Fatalln(err)
		}
		for _, port := range ports {
			fmt.Println(port)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	if writeConfig != "" {
		if err := cfg.Save(writeConfig); err != nil {
			log.Fatalln(err)
		}
		return
	}

	var hw panel.Hardware
	if hw.ADC, err = panel.OpenADC(cfg); err != nil {
		log.Fatalln(err)
	}
	if hw.Pin, err = panel.OpenPin(cfg); err != nil {
		log.Fatalln(err)
	}
	var win *window.Window
	if cfg.Display.Sink == "window" {
		win = window.New(cfg.Display.XOffset+display.Width, cfg.Display.YOffset+display.Height)
		win.Scale = cfg.Display.Scale
		hw.Sink = &display.DisplayerSink{Display: win}
	} else if hw.Sink, err = panel.OpenSink(cfg); err != nil {
		log.Fatalln(err)
	}

	p, err := panel.New(cfg, hw)
	if err != nil {
		log.Fatalln(err)
	}
	if win != nil {
		p.Observe(func(st panel.Status) {
			win.SetCaption(fmt.Sprintf("%s %dmV %d%%", st.Label, st.Millivolts, st.Percent))
		})
	}

	var extra []fx.Runnable
	if cfg.Console.SerialPort != "" {
		extra = append(extra, &console.SerialSource{
			Port:     cfg.Console.SerialPort,
			BaudRate: cfg.Console.BaudRate,
			Commands: p.Commands,
			Banner:   p.WriteBanner,
		})
	}
	if cfg.Console.Shell {
		p.WriteBanner(os.Stdout)
		fmt.Println()
		extra = append(extra, console.NewShell(p.Commands))
	}
	l, err := env.NewLink(cfg.Link, link.PanelDevice{Panel: p})
	if err != nil {
		log.Fatalln(err)
	}
	if l != nil {
		p.Observe(l.Service.Publish)
		extra = append(extra, l.Runners...)
	}

	runner := fx.NewRunner().HandleSignals()
	ctx, cancel := context.WithCancel(runner.Context)
	defer cancel()
	runner.GoWith(ctx, fx.NamedRun("panel", fx.RunFunc(func(ctx context.Context) error {
		return p.Run(ctx, extra...)
	})))

	if win != nil {
		if err := win.Run(); err != nil {
			glog.Errorf("window: %v", err)
		}
		cancel()
	}
	if err := runner.Wait(); err != nil {
		glog.Errorf("stopped: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
