package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
)

// SysInfoInterval is how often CPU and memory are sampled.
const SysInfoInterval = time.Second

// cpuHistoryLen is the number of bars in the CPU graph.
const cpuHistoryLen = 10

// SysInfoMsg carries one CPU and memory sample.
type SysInfoMsg struct {
	CPU float64
	RAM float64
}

// SampleSysInfoCmd samples usage after SysInfoInterval. cpu.Percent with a
// zero interval compares against the previous call, so the first sample
// reads as zero.
func SampleSysInfoCmd() tea.Cmd {
	return tea.Tick(SysInfoInterval, func(time.Time) tea.Msg {
		var msg SysInfoMsg
		if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
			msg.CPU = pct[0]
		}
		if vm, err := mem.VirtualMemory(); err == nil {
			msg.RAM = vm.UsedPercent
		}
		return msg
	})
}

// recordSysInfo appends a sample to the history.
func (m *OS) recordSysInfo(msg SysInfoMsg) {
	if len(m.CPUHistory) >= cpuHistoryLen {
		m.CPUHistory = m.CPUHistory[1:]
	}
	m.CPUHistory = append(m.CPUHistory, min(100, max(0, msg.CPU)))
	m.RAMUsage = msg.RAM
}

var graphBars = []rune("▁▂▃▄▅▆▇█")

// GetCPUGraph returns a fixed-width CPU bar graph with the latest percentage.
func (m *OS) GetCPUGraph() string {
	current := 0.0
	if len(m.CPUHistory) > 0 {
		current = m.CPUHistory[len(m.CPUHistory)-1]
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", cpuHistoryLen-len(m.CPUHistory)))
	for _, usage := range m.CPUHistory {
		if config.UseASCIIOnly {
			b.WriteByte(".:|#"[min(3, int(usage/25))])
			continue
		}
		b.WriteRune(graphBars[min(len(graphBars)-1, int(usage/12.5))])
	}
	return fmt.Sprintf("CPU:%s %3.0f%%", b.String(), current)
}

// GetRAMUsage returns the memory percentage label.
func (m *OS) GetRAMUsage() string {
	return fmt.Sprintf("RAM:%3.0f%%", m.RAMUsage)
}
