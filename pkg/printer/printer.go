package printer

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer is the interface for sending raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer connection is active.
	IsConnected() bool
}

// Supported printer types.
const (
	TypeNone    = "none"
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeBuffer  = "buffer"
)

// Config selects and configures a printer backend.
type Config struct {
	Type        string
	USBPath     string // e.g. /dev/usb/lp0
	Address     string // e.g. 192.168.1.100:9100
	DialTimeout time.Duration
}

// New creates the Printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case TypeUSB:
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(cfg.USBPath), nil
	case TypeNetwork:
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		p := NewNetworkPrinter(cfg.Address)
		if cfg.DialTimeout > 0 {
			p.timeout = cfg.DialTimeout
		}
		return p, nil
	case TypeBuffer:
		return NewBufferPrinter(), nil
	case TypeNone, "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, buffer or none)", cfg.Type)
	}
}

// --- USB printer (device file) ---

type usbPrinter struct {
	path string
	mu   sync.Mutex
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network printer (raw TCP, port 9100) ---

// NetworkPrinter sends jobs over a fresh TCP connection per print.
type NetworkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
func NewNetworkPrinter(address string) *NetworkPrinter {
	return &NetworkPrinter{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (p *NetworkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write to %s: %w", p.address, err)
	}
	return nil
}

func (p *NetworkPrinter) Close() error { return nil }

func (p *NetworkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Buffer printer (keeps jobs in memory) ---

// BufferPrinter records every job. Useful for previews and tests.
type BufferPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
}

// NewBufferPrinter creates an in-memory printer.
func NewBufferPrinter() *BufferPrinter {
	return &BufferPrinter{}
}

func (p *BufferPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, bytes.Clone(data))
	return nil
}

func (p *BufferPrinter) Close() error { return nil }

func (p *BufferPrinter) IsConnected() bool { return true }

// Jobs returns a copy of the recorded jobs in print order.
func (p *BufferPrinter) Jobs() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.jobs))
	copy(out, p.jobs)
	return out
}

// --- Null printer ---

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(data []byte) error { return nil }

func (nullPrinter) Close() error { return nil }

func (nullPrinter) IsConnected() bool { return false }
