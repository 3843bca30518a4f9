// Package security scans the local host's security posture: listening
// ports, suspicious processes, and firewall state, folded into a single
// 0-100 score.
package security

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/jsnovaweb/ServerSensei/internal/logger"
	"github.com/jsnovaweb/ServerSensei/internal/metrics"
)

// maliciousPorts are well-known backdoor/trojan listening ports.
var maliciousPorts = map[int]bool{
	1337: true, 31337: true, 12345: true, 54321: true,
	6666: true, 6667: true, 6668: true, 6669: true,
	1243: true, 1999: true, 2000: true,
	6711: true, 6712: true, 6713: true,
}

// suspiciousNames flag processes by name fragment.
var suspiciousNames = []string{
	"nc", "netcat", "ncat", "cryptominer", "miner",
	"xmrig", "ccminer", "backdoor", "rootkit",
}

// logCapacity bounds the scan event log.
const logCapacity = 1000

// LogEntry is one recorded security event.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
}

// Scanner satisfies metrics.SecurityScanner for the local host. Each
// scan is recorded in a bounded event log owned by the scanner.
type Scanner struct {
	mu       sync.Mutex
	events   []LogEntry
	log      logger.Logger
	firewall func() metrics.FirewallStatus
}

// NewScanner creates a security scanner.
func NewScanner() *Scanner {
	s := &Scanner{log: logger.Noop()}
	s.firewall = s.checkFirewall
	return s
}

// WithLogger sets the logger used for probe failure reporting.
func (s *Scanner) WithLogger(l logger.Logger) *Scanner {
	s.log = l
	return s
}

// Scan runs a full posture check and returns the scored result.
func (s *Scanner) Scan() (*metrics.SecuritySample, error) {
	sample := &metrics.SecuritySample{
		Timestamp:           time.Now().Format("2006-01-02 15:04:05"),
		OpenPorts:           s.scanOpenPorts(),
		SuspiciousProcesses: s.detectSuspiciousProcesses(),
		Firewall:            s.firewall(),
	}

	sample.Score = calculateScore(sample)
	sample.Warnings = generateWarnings(sample)
	sample.Recommendations = generateRecommendations(sample)

	s.record("security_scan", fmt.Sprintf("score=%d ports=%d suspicious=%d",
		sample.Score, len(sample.OpenPorts), len(sample.SuspiciousProcesses)))

	return sample, nil
}

// scanOpenPorts lists listening inet sockets. Access errors degrade to
// an empty list.
func (s *Scanner) scanOpenPorts() []metrics.PortInfo {
	ports := []metrics.PortInfo{}

	conns, err := gopsnet.Connections("inet")
	if err != nil {
		s.log.Debug("port scan failed: %v", err)
		return ports
	}

	for _, conn := range conns {
		if conn.Status != "LISTEN" {
			continue
		}
		port := int(conn.Laddr.Port)
		ports = append(ports, metrics.PortInfo{
			Port:       port,
			Address:    conn.Laddr.IP,
			PID:        int(conn.Pid),
			Process:    processName(conn.Pid),
			Suspicious: maliciousPorts[port],
		})
	}
	return ports
}

// processName resolves a PID to a name, with "System" for kernel-owned
// sockets and "Unknown" for anything unreadable.
func processName(pid int32) string {
	if pid == 0 {
		return "System"
	}
	p, err := process.NewProcess(pid)
	if err != nil {
		return "Unknown"
	}
	name, err := p.Name()
	if err != nil {
		return "Unknown"
	}
	return name
}

// detectSuspiciousProcesses flags processes with known-bad name
// fragments, and otherwise anything burning >90% CPU and >50% memory.
func (s *Scanner) detectSuspiciousProcesses() []metrics.SuspiciousProcess {
	suspicious := []metrics.SuspiciousProcess{}

	procs, err := process.Processes()
	if err != nil {
		s.log.Debug("process scan failed: %v", err)
		return suspicious
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}

		user, _ := p.Username()
		cpu, _ := p.CPUPercent()
		memPct, _ := p.MemoryPercent()
		mem := float64(memPct)

		if reason, bad := suspicionReason(name, cpu, mem); bad {
			suspicious = append(suspicious, metrics.SuspiciousProcess{
				PID:    int(p.Pid),
				Name:   name,
				User:   user,
				CPU:    cpu,
				Memory: mem,
				Reason: reason,
			})
		}
	}
	return suspicious
}

// suspicionReason classifies a process. Name matches win over the
// resource heuristic.
func suspicionReason(name string, cpu, mem float64) (string, bool) {
	lower := strings.ToLower(name)
	for _, bad := range suspiciousNames {
		if strings.Contains(lower, bad) {
			return "Suspicious process name", true
		}
	}
	if cpu > 90 && mem > 50 {
		return "High resource usage", true
	}
	return "", false
}

// record appends to the bounded event log, evicting oldest first.
func (s *Scanner) record(eventType, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, LogEntry{
		Timestamp: time.Now(),
		Type:      eventType,
		Details:   details,
	})
	if len(s.events) > logCapacity {
		s.events = s.events[len(s.events)-logCapacity:]
	}
}

// Log returns up to limit most recent events, oldest first.
func (s *Scanner) Log(limit int) []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := 0
	if limit > 0 && len(s.events) > limit {
		start = len(s.events) - limit
	}
	out := make([]LogEntry, len(s.events)-start)
	copy(out, s.events[start:])
	return out
}
