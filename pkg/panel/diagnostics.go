package panel

import (
	"fmt"
	"io"
	"runtime"
	"time"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/led"
)

// Report keywords
const (
	ReportInfo     = "info"
	ReportHeap     = "heap"
	ReportRuntime  = "runtime"
	ReportRealtime = "realtime"
	ReportStatus   = "status"
	ReportHelp     = "help"
)

func (p *Panel) registerReports() {
	p.Dispatcher.
		HandleReport(ReportInfo, "Show thread information", p.WriteThreadInfo).
		HandleReport(ReportHeap, "Show heap information", WriteHeapInfo).
		HandleReport(ReportRuntime, "Show runtime information", p.WriteRuntimeInfo).
		HandleReport(ReportRealtime, "Show real-time information", p.WriteRealtimeInfo).
		HandleReport(ReportStatus, "Show current system status", p.WriteStatus).
		HandleReport(ReportHelp, "Show this help menu", p.WriteHelp)
}

// WriteBanner writes the startup banner.
func (p *Panel) WriteBanner(w io.Writer) {
	fmt.Fprintln(w, "\n=== LED Control with ADC ===")
	fmt.Fprintln(w, "LED Commands:")
	fmt.Fprintln(w, "  0 - Turn LED OFF")
	fmt.Fprintln(w, "  1 - Turn LED ON")
	fmt.Fprintln(w, "  2 - Start LED BLINKING")
	fmt.Fprintln(w, "System Commands:")
	fmt.Fprintln(w, "  info, heap, runtime, realtime, help, status")
	fmt.Fprint(w, "Enter command: ")
}

// WriteThreadInfo writes the task table and the signals connecting tasks.
func (p *Panel) WriteThreadInfo(w io.Writer) {
	fmt.Fprintln(w, "\n=== THREAD INFORMATION ===")
	fmt.Fprintf(w, "%-20s %-10s\n", "Thread Name", "Priority")
	fmt.Fprintln(w, "------------------------------------------------------------")
	fmt.Fprintf(w, "%-20s %-10d\n", "main", 0)
	for _, task := range p.Tasks() {
		fmt.Fprintf(w, "%-20s %-10d\n", task.Name, task.Priority)
	}
	fmt.Fprintln(w, "\nSignals:")
	fmt.Fprintln(w, "- sample: Controls ADC reading")
	fmt.Fprintln(w, "- render: Controls display updates")
	fmt.Fprintln(w, "- blink: Controls LED blinking")
	fmt.Fprintln(w, "=========================")
	fmt.Fprintln(w)
}

// WriteHeapInfo writes Go heap statistics.
func WriteHeapInfo(w io.Writer) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	fmt.Fprintln(w, "\n=== HEAP INFORMATION ===")
	fmt.Fprintf(w, "Heap Size:       %d bytes\n", stats.HeapSys)
	fmt.Fprintf(w, "Allocated:       %d bytes\n", stats.HeapAlloc)
	fmt.Fprintf(w, "Free:            %d bytes\n", stats.HeapSys-stats.HeapAlloc)
	fmt.Fprintf(w, "Objects:         %d\n", stats.HeapObjects)
	fmt.Fprintf(w, "GC Cycles:       %d\n", stats.NumGC)
	fmt.Fprintln(w, "========================")
	fmt.Fprintln(w)
}

// WriteRuntimeInfo writes uptime and task activity.
func (p *Panel) WriteRuntimeInfo(w io.Writer) {
	blink := "Inactive"
	if p.LED.Mode() == led.ModeBlinking {
		blink = "Active (blinking)"
	}
	fmt.Fprintln(w, "\n=== RUNTIME INFORMATION ===")
	fmt.Fprintf(w, "System Uptime: %d ms\n", p.Uptime().Milliseconds())
	fmt.Fprintf(w, "Sampling Period: %v\n", p.Config.Sampling.Period)
	fmt.Fprintf(w, "Goroutines: %d\n", runtime.NumGoroutine())
	fmt.Fprintln(w, "\nThread Status:")
	fmt.Fprintf(w, "- %s: %s\n", p.Blinker.Name(), blink)
	fmt.Fprintf(w, "- %s: Active (waiting for commands, %d processed)\n", p.Commands.Name(), p.Commands.Processed())
	fmt.Fprintf(w, "- %s: Active (timer-driven, %d ticks, %d samples, %d errors)\n",
		p.Sampler.Name(), p.Ticker.Ticks(), p.Sampler.Samples(), p.Sampler.Errors())
	fmt.Fprintf(w, "- %s: Active (event-driven, %d frames)\n", p.Renderer.Name(), p.Renderer.Renders())
	if states := p.TaskStates(); len(states) > 0 {
		fmt.Fprintln(w, "\nTasks:")
		for _, st := range states {
			state := "running"
			if !st.Running {
				state = fmt.Sprintf("stopped (%v)", st.Err)
			}
			fmt.Fprintf(w, "- %-10s %s, up %v\n", st.Name, state, time.Since(st.Started).Truncate(time.Millisecond))
		}
	}
	fmt.Fprintln(w, "===========================")
	fmt.Fprintln(w)
}

// WriteRealtimeInfo writes priorities and synchronization mechanisms.
func (p *Panel) WriteRealtimeInfo(w io.Writer) {
	fmt.Fprintln(w, "\n=== REAL-TIME INFORMATION ===")
	fmt.Fprintln(w, "Thread Priorities (lower number = higher priority):")
	fmt.Fprintf(w, "- %-16s %d\n", "main:", 0)
	for _, task := range p.Tasks() {
		fmt.Fprintf(w, "- %-16s %d\n", task.Name+":", task.Priority)
	}
	steps := p.Scheduler.StepCounts()
	fmt.Fprintln(w, "\nScheduled Steps:")
	for _, task := range p.Tasks() {
		fmt.Fprintf(w, "- %-16s %d\n", task.Name+":", steps[fx.ClampPriority(task.Priority)])
	}
	stats := p.State.Stats()
	fmt.Fprintln(w, "\nSynchronization Mechanisms:")
	fmt.Fprintln(w, "- Signals: Event-driven execution")
	fmt.Fprintln(w, "- Ticker: Periodic ADC reading")
	fmt.Fprintf(w, "- Mutex: Thread-safe data access (%d commits, %d dropped, %d stale reads)\n",
		stats.Commits, stats.Dropped, stats.StaleReads)
	fmt.Fprintf(w, "- Queue: Command lines (%d pending, %d dropped)\n", p.Commands.Pending(), p.Commands.Dropped())
	fmt.Fprintln(w, "=============================")
	fmt.Fprintln(w)
}

// WriteHelp writes the command summary.
func (p *Panel) WriteHelp(w io.Writer) {
	fmt.Fprintln(w, "\n=== COMMANDS ===")
	fmt.Fprintln(w, "LED Control:")
	fmt.Fprintln(w, "  0 - Turn LED OFF")
	fmt.Fprintln(w, "  1 - Turn LED ON")
	fmt.Fprintln(w, "  2 - Start LED BLINKING")
	fmt.Fprintln(w, "\nSystem Information:")
	for _, entry := range p.Dispatcher.Reports() {
		fmt.Fprintf(w, "  %-8s - %s\n", entry.Keyword, entry.Help)
	}
	fmt.Fprintln(w, "==========================")
	fmt.Fprintln(w)
}

// WriteStatus writes the current status.
func (p *Panel) WriteStatus(w io.Writer) {
	st := p.Status()
	ready := "NO"
	if st.Valid {
		ready = "YES"
	}
	fmt.Fprintln(w, "\n=== CURRENT STATUS ===")
	fmt.Fprintf(w, "LED State: %s\n", st.Label)
	fmt.Fprintf(w, "ADC Voltage: %d mV\n", st.Millivolts)
	fmt.Fprintf(w, "ADC Percentage: %d%%\n", st.Percent)
	fmt.Fprintf(w, "System Uptime: %d ms\n", st.Uptime.Milliseconds())
	fmt.Fprintf(w, "Data Ready: %s\n", ready)
	fmt.Fprintln(w, "======================")
	fmt.Fprintln(w)
}
