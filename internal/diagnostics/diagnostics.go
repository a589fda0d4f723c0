// Package diagnostics runs preflight checks before a covert session starts:
// host identification, memory pressure, CPU availability and a writable
// working directory. The checks gate nothing by themselves; they produce a
// leveled report the operator (or the control API) can act on.
package diagnostics

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Level grades a diagnostic finding.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelCritical
)

// String returns the report label for the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Report is one diagnostic finding.
type Report struct {
	Level      Level  `json:"level"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// memoryPressureThreshold marks a host whose memory is nearly exhausted;
// large payload encodes allocate several transient copies.
const memoryPressureThreshold = 90.0

// RunPreflightChecks runs every diagnostic and returns the findings.
func RunPreflightChecks() []Report {
	return []Report{
		checkHost(),
		checkMemory(),
		checkCPU(),
		checkWorkingDirectory(),
	}
}

func checkHost() Report {
	info, err := host.Info()
	if err != nil {
		return Report{
			Level:      LevelWarning,
			Message:    "unable to identify host",
			Suggestion: err.Error(),
		}
	}
	return Report{
		Level: LevelInfo,
		Message: fmt.Sprintf("host %s (%s %s, up %s)",
			info.Hostname, info.Platform, info.PlatformVersion,
			(time.Duration(info.Uptime) * time.Second).String()),
	}
}

func checkMemory() Report {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Report{
			Level:      LevelWarning,
			Message:    "unable to read memory statistics",
			Suggestion: err.Error(),
		}
	}
	if vm.UsedPercent > memoryPressureThreshold {
		return Report{
			Level:      LevelWarning,
			Message:    fmt.Sprintf("high memory pressure: %.1f%% used", vm.UsedPercent),
			Suggestion: "large payloads may fail to encode; free memory or reduce payload size",
		}
	}
	return Report{
		Level:   LevelInfo,
		Message: fmt.Sprintf("memory ok: %.1f%% of %d MB used", vm.UsedPercent, vm.Total/1024/1024),
	}
}

func checkCPU() Report {
	counts, err := cpu.Counts(true)
	if err != nil {
		return Report{
			Level:      LevelWarning,
			Message:    "unable to count CPUs",
			Suggestion: err.Error(),
		}
	}
	return Report{
		Level:   LevelInfo,
		Message: fmt.Sprintf("%d logical CPUs, GOMAXPROCS=%d", counts, runtime.GOMAXPROCS(0)),
	}
}

func checkWorkingDirectory() Report {
	dir, err := os.Getwd()
	if err != nil {
		return Report{
			Level:      LevelError,
			Message:    "unable to resolve working directory",
			Suggestion: err.Error(),
		}
	}
	f, err := os.CreateTemp(dir, ".dnsveil-probe-*")
	if err != nil {
		return Report{
			Level:      LevelError,
			Message:    fmt.Sprintf("working directory %s is not writable", dir),
			Suggestion: "the profile store and journal need a writable directory",
		}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return Report{
		Level:   LevelInfo,
		Message: fmt.Sprintf("working directory %s is writable", dir),
	}
}

// RenderReport formats findings as the text report the CLI prints.
func RenderReport(reports []Report) string {
	var b strings.Builder
	b.WriteString("dnsveil preflight report\n")
	b.WriteString("========================\n")
	fmt.Fprintf(&b, "generated: %s\n\n", time.Now().Format(time.RFC3339))
	for _, r := range reports {
		fmt.Fprintf(&b, "[%s] %s\n", r.Level, r.Message)
		if r.Suggestion != "" {
			fmt.Fprintf(&b, "    suggestion: %s\n", r.Suggestion)
		}
	}
	return b.String()
}

// Failed reports whether any finding is ERROR or worse.
func Failed(reports []Report) bool {
	for _, r := range reports {
		if r.Level >= LevelError {
			return true
		}
	}
	return false
}
