// Package mdns provides mDNS/Zeroconf advertisement and discovery for
// PromptDeck servers on the local network.
package mdns

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	// ServiceType is the mDNS service type for PromptDeck servers.
	ServiceType = "_promptdeck._tcp"

	// APIVersion is the current API version advertised in TXT records.
	APIVersion = "v1"
)

// Service manages mDNS advertisement for the PromptDeck server.
// It allows local network discovery of the server without manual configuration.
type Service struct {
	server *mdns.Server
	logger *slog.Logger
	mu     sync.Mutex
}

// NewService creates a new mDNS service.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Start begins advertising the server via mDNS.
// It should be called after the HTTP server is running. The name and version
// are published as TXT records alongside the API version.
//
// Returns an error if mDNS advertisement fails to start. Errors are typically
// non-fatal (e.g., multicast not supported in Docker).
func (s *Service) Start(name, version string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop existing server if running (for restart scenarios)
	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
	}

	// Get hostname for mDNS instance name
	host, err := os.Hostname()
	if err != nil {
		host = "promptdeck-server"
	}

	txtRecords := []string{
		fmt.Sprintf("name=%s", name),
		fmt.Sprintf("version=%s", version),
		fmt.Sprintf("api=%s", APIVersion),
	}

	service, err := mdns.NewMDNSService(
		host,        // Instance name (hostname)
		ServiceType, // Service type (_promptdeck._tcp)
		"",          // Domain (empty = .local)
		"",          // Host (empty = use system hostname)
		port,        // Port
		nil,         // IPs (nil = all interfaces)
		txtRecords,  // TXT records
	)
	if err != nil {
		return fmt.Errorf("create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{
		Zone: service,
	})
	if err != nil {
		return fmt.Errorf("start mDNS server: %w", err)
	}

	s.server = server

	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"port", port,
		"name", name,
	)

	return nil
}

// Stop stops mDNS advertising.
// Safe to call multiple times or if not started.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
		s.logger.Info("mDNS advertisement stopped")
	}
}

// ServerInfo describes a PromptDeck server found on the local network.
type ServerInfo struct {
	Name   string            // advertised server name
	Host   string            // mDNS hostname
	Addr   net.IP            // IPv4 address, nil when unresolved
	Port   int               // HTTP port
	Fields map[string]string // parsed TXT records
}

// URL returns the base URL for reaching the server's API.
func (si ServerInfo) URL() string {
	if si.Addr != nil {
		return fmt.Sprintf("http://%s:%d", si.Addr, si.Port)
	}
	return fmt.Sprintf("http://%s:%d", strings.TrimSuffix(si.Host, "."), si.Port)
}

// Discover browses the local network for PromptDeck servers, collecting
// responses for up to the given timeout.
func Discover(timeout time.Duration) ([]ServerInfo, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	done := make(chan []ServerInfo, 1)

	go func() {
		var servers []ServerInfo
		for entry := range entries {
			if !strings.Contains(entry.Name, ServiceType) {
				continue
			}

			info := ServerInfo{
				Name:   instanceName(entry.Name),
				Host:   entry.Host,
				Addr:   entry.AddrV4,
				Port:   entry.Port,
				Fields: parseTXT(entry.InfoFields),
			}
			// Prefer the advertised server name over the mDNS instance name.
			if name := info.Fields["name"]; name != "" {
				info.Name = name
			}
			servers = append(servers, info)
		}
		done <- servers
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.DisableIPv6 = true
	if timeout > 0 {
		params.Timeout = timeout
	}

	err := mdns.Query(params)
	close(entries)
	servers := <-done

	if err != nil {
		return nil, fmt.Errorf("mdns query: %w", err)
	}
	return servers, nil
}

// instanceName strips the service type and domain suffix from a full mDNS
// name like "host._promptdeck._tcp.local.".
func instanceName(full string) string {
	name, _, found := strings.Cut(full, "."+ServiceType)
	if !found {
		return strings.TrimSuffix(full, ".")
	}
	return name
}

// parseTXT splits key=value TXT records into a map. Records without an
// equals sign are dropped.
func parseTXT(fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		key, value, found := strings.Cut(field, "=")
		if !found {
			continue
		}
		out[key] = value
	}
	return out
}
