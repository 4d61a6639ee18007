package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentDefaultsTo80mm(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, Width80mm, d.Width())
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes())
}

func TestKeyValueFillsWidth(t *testing.T) {
	d := NewDocument(20)
	d.KeyValue("TOTAL:", "₦2,700")

	line := string(d.Bytes()[2:])
	assert.Equal(t, "TOTAL:"+strings.Repeat(" ", 8)+"₦2,700\n", line)
}

func TestRowPadsAndTruncates(t *testing.T) {
	d := NewDocument(12)
	d.Row(
		Column{Text: "Widget Deluxe", Width: 6},
		Column{Text: "3", Width: 2, Align: AlignCenter},
		Column{Text: "90", Width: 4, Align: AlignRight},
	)

	assert.Equal(t, "Widget3   90\n", string(d.Bytes()[2:]))
}

func TestBarcode128(t *testing.T) {
	d := NewDocument(Width80mm)
	d.Barcode128("INV-1")

	out := d.Bytes()
	assert.True(t, bytes.Contains(out, []byte{GS, 'k', 73, 7}))
	assert.True(t, bytes.Contains(out, []byte("{BINV-1")))

	empty := NewDocument(Width80mm)
	empty.Barcode128("")
	assert.Len(t, empty.Bytes(), 2)
}

func TestNewFromConfig(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Name())

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)

	_, err = New(Config{Type: "network"})
	assert.Error(t, err)

	_, err = New(Config{Type: "serial"})
	assert.Error(t, err)

	p, err = New(Config{Type: "memory"})
	require.NoError(t, err)
	assert.True(t, p.Available(context.Background()))
}

func TestMemoryPrinterCopiesJobs(t *testing.T) {
	p := NewMemoryPrinter()
	data := []byte("receipt")
	require.NoError(t, p.Print(context.Background(), data))
	data[0] = 'X'

	jobs := p.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "receipt", string(jobs[0]))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Print(ctx, data), context.Canceled)
}

func TestNetworkPrinterWritesJob(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()

	p := NewNetworkPrinter(ln.Addr().String(), time.Second, time.Second)
	require.NoError(t, p.Print(context.Background(), []byte("hello")))

	select {
	case b := <-received:
		assert.Equal(t, "hello", string(b))
	case <-time.After(2 * time.Second):
		t.Fatal("printer job not received")
	}
}
