// Package r307 implements the host side of the serial packet protocol spoken
// by R30x / AS60x optical fingerprint modules.
//
// The module keeps images, character buffers and the template library in its
// own memory; the host only issues commands and reads confirmation codes.
// Every command is a blocking request/acknowledge exchange over a UART.
//
// Packet layout (all multi-byte fields big-endian):
//
//	EF 01 | ADDR(4) | PID(1) | LEN(2) | PAYLOAD(LEN-2) | SUM(2)
//
// SUM is the low 16 bits of the byte sum of PID, LEN and PAYLOAD.
//
// Example Usage:
//
//	client := r307.NewClient(r307.Config{PortName: "/dev/ttyS0"})
//	if err := client.Connect(); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Disconnect()
//
//	if err := client.GenImg(ctx); errors.Is(err, r307.ErrNoFinger) {
//	    // палец не приложен
//	}
package r307
