package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/robotalks/statuspanel/pkg/cli/sh"
	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link/comm/mqtt"
	"github.com/robotalks/statuspanel/pkg/link/env"
	"github.com/robotalks/statuspanel/pkg/link/msgs"
)

var (
	command = -1
	conf    = env.NewConfig()
)

func init() {
	flag.IntVar(&command, "cmd", command, "Send SetMode with this mode (0=OFF, 1=ON, 2=BLINK) and exit.")
	conf.SetupFlags(flag.CommandLine)
}

func sendCommand() {
	conn, err := conf.Connect(context.Background())
	if err != nil {
		log.Fatalln(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go conn.Run(ctx)
	res := sh.Await(conn.DoCommand(msgs.NewSetMode(command)), sh.DefaultTimeout)
	if res.Err != nil {
		log.Fatalln(res.Err)
	}
	out, _ := sh.FormatMessage(res.Msg, false)
	log.Println(out)
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	if command >= 0 {
		sendCommand()
		return
	}

	q, err := mqtt.NewQueueFromURL(conf.URL)
	if err != nil {
		log.Fatalln(err)
	}
	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/meta") {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		out, _ := sh.FormatMessage(msg, false)
		log.Printf("%s: [%s] #%d %s", topic, msgs.Name(msg), typed.Sequence, out)
	}))
	token := q.Connect()
	if token.Wait(); token.Error() != nil {
		log.Fatalln(token.Error())
	}
	defer q.Close()

	runner := fx.NewRunner().HandleSignals()
	<-runner.Context.Done()
}
