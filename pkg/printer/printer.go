package printer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends raw ESC/POS data to a receipt printer.
type Printer interface {
	// Print writes one job. The context bounds connecting and writing.
	Print(ctx context.Context, data []byte) error
	// Name identifies the destination in logs.
	Name() string
	// Available reports whether the destination can currently be reached.
	Available(ctx context.Context) bool
}

// Config selects and addresses a printer.
type Config struct {
	Type         string        // "usb", "network", "memory" or "none"
	DevicePath   string        // e.g. /dev/usb/lp0
	Address      string        // e.g. 192.168.1.100:9100
	DialTimeout  time.Duration // network only
	WriteTimeout time.Duration // network only
}

// devicePrinter writes to a device file and reopens it per job.
type devicePrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &devicePrinter{path: devicePath}
}

func (p *devicePrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Name() string { return "usb:" + p.path }

func (p *devicePrinter) Available(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// tcpPrinter dials a raw print port (usually 9100) per job.
type tcpPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
func NewNetworkPrinter(address string, dialTimeout, writeTimeout time.Duration) Printer {
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &tcpPrinter{address: address, dialTimeout: dialTimeout, writeTimeout: writeTimeout}
}

func (p *tcpPrinter) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: p.dialTimeout}
	return d.DialContext(ctx, "tcp", p.address)
}

func (p *tcpPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(p.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *tcpPrinter) Name() string { return "tcp:" + p.address }

func (p *tcpPrinter) Available(ctx context.Context) bool {
	conn, err := p.dial(ctx)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// nullPrinter discards jobs; used when no hardware is configured.
type nullPrinter struct{}

// NewNullPrinter creates a no-op printer.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, []byte) error { return nil }
func (nullPrinter) Name() string                        { return "none" }
func (nullPrinter) Available(context.Context) bool      { return false }

// MemoryPrinter keeps every job in memory. Useful for kiosks without hardware and for tests.
type MemoryPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
}

// NewMemoryPrinter creates an empty MemoryPrinter.
func NewMemoryPrinter() *MemoryPrinter {
	return &MemoryPrinter{}
}

func (p *MemoryPrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, bytes.Clone(data))
	return nil
}

func (p *MemoryPrinter) Name() string { return "memory" }

func (p *MemoryPrinter) Available(context.Context) bool { return true }

// Jobs returns a copy of the jobs printed so far.
func (p *MemoryPrinter) Jobs() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.jobs))
	copy(out, p.jobs)
	return out
}

// New creates the Printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.DevicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for usb printers")
		}
		return NewUSBPrinter(cfg.DevicePath), nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		return NewNetworkPrinter(cfg.Address, cfg.DialTimeout, cfg.WriteTimeout), nil
	case "memory":
		return NewMemoryPrinter(), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, memory or none)", cfg.Type)
	}
}
