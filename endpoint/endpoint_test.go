// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package endpoint

import (
	"errors"
	"net/netip"
	"strconv"

	"github.com/siemens/endpoints/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("parsing and formatting endpoints", func() {

	It("applies the well-known default ports", func() {
		for scheme, port := range map[string]uint16{
			"http":  80,
			"https": 443,
			"ws":    80,
			"wss":   443,
			"mqtt":  1883,
			"mqtts": 8883,
			"coap":  5683,
			"coaps": 5684,
			"redis": 6379,
			"amqp":  5672,
			"ftp":   21,
		} {
			ep := Successful(Parse(scheme + "://example.com"))
			Expect(ep.Scheme().String()).To(Equal(scheme))
			Expect(ep.Port()).To(Equal(port), "scheme %q", scheme)
			Expect(ep.String()).To(Equal(scheme + "://example.com:" + itoa(port)))
		}
	})

	It("insists on explicit ports for tcp and udp", func() {
		for _, scheme := range []string{"tcp", "udp"} {
			_, err := Parse(scheme + "://example.com")
			var invalid *InvalidAddressError
			Expect(errors.As(err, &invalid)).To(BeTrue(), "scheme %q", scheme)

			ep := Successful(Parse(scheme + "://example.com:9000"))
			Expect(ep.Port()).To(Equal(uint16(9000)))
		}
	})

	It("honors explicit ports over defaults", func() {
		ep := Successful(Parse("http://example.com:8080"))
		Expect(ep.Port()).To(Equal(uint16(8080)))
		Expect(ep.String()).To(Equal("http://example.com:8080"))

		ep = Successful(Parse("https://example.com:0"))
		Expect(ep.Port()).To(BeZero())
	})

	It("parses IP literal hosts", func() {
		ep := Successful(Parse("tcp://127.0.0.1:9000"))
		Expect(ep.Scheme()).To(Equal(TCP))
		ip, ok := ep.Host().IP()
		Expect(ok).To(BeTrue())
		Expect(ip).To(Equal(netip.MustParseAddr("127.0.0.1")))
		Expect(ep.Port()).To(Equal(uint16(9000)))
		Expect(ep.String()).To(Equal("tcp://127.0.0.1:9000"))
	})

	It("parses bracketed IPv6 literal hosts", func() {
		ep := Successful(Parse("tcp://[::1]:8080"))
		ip, ok := ep.Host().IP()
		Expect(ok).To(BeTrue())
		Expect(ip).To(Equal(netip.MustParseAddr("::1")))
		Expect(ep.String()).To(Equal("tcp://[::1]:8080"))

		ep = Successful(Parse("https://[2001:db8::1]"))
		Expect(ep.Port()).To(Equal(uint16(443)))
		Expect(ep.String()).To(Equal("https://[2001:db8::1]:443"))
	})

	It("rejects non-IP bracketed hosts and unbalanced brackets", func() {
		for _, uri := range []string{
			"tcp://[example.com]:80",
			"tcp://[::1:80",
			"tcp://[::1]80",
		} {
			_, err := Parse(uri)
			var invalid *InvalidAddressError
			Expect(errors.As(err, &invalid)).To(BeTrue(), "uri %q", uri)
		}
	})

	It("parses domain hosts", func() {
		ep := Successful(Parse("ftp://example.com"))
		Expect(ep.Scheme()).To(Equal(FTP))
		domain, ok := ep.Host().Domain()
		Expect(ok).To(BeTrue())
		Expect(domain).To(Equal("example.com"))
		Expect(ep.Port()).To(Equal(uint16(21)))
	})

	It("rejects unsupported schemes", func() {
		for _, uri := range []string{
			"xyz://host:1",
			"TCP://host:1", // matching is case-sensitive
			" tcp://host:1",
			"mqtt5://broker.local",
		} {
			_, err := Parse(uri)
			Expect(err).To(MatchError(ErrInvalidScheme), "uri %q", uri)
		}
	})

	It("rejects host-less authorities", func() {
		_, err := Parse("tcp://:8080")
		var invalid *InvalidAddressError
		Expect(errors.As(err, &invalid)).To(BeTrue())
		Expect(invalid.Token).To(Equal(":8080"))
	})

	It("rejects malformed ports", func() {
		for _, uri := range []string{
			"tcp://example.com:",
			"tcp://example.com:http",
			"tcp://example.com:65536",
			"tcp://example.com:-1",
			"tcp://example.com:8080 ",
		} {
			_, err := Parse(uri)
			var invalid *InvalidAddressError
			Expect(errors.As(err, &invalid)).To(BeTrue(), "uri %q", uri)
		}
	})

	It("rejects scheme-less and empty input", func() {
		for _, uri := range []string{"", "example.com", "/tmp/socket.sock"} {
			_, err := Parse(uri)
			var invalid *InvalidAddressError
			Expect(errors.As(err, &invalid)).To(BeTrue(), "uri %q", uri)
		}
	})

	It("parses unix and file endpoints", func() {
		ep := Successful(Parse("unix:///tmp/socket.sock"))
		Expect(ep.Scheme()).To(Equal(Unix))
		Expect(ep.Path()).To(Equal("/tmp/socket.sock"))
		Expect(ep.String()).To(Equal("unix:///tmp/socket.sock"))

		ep = Successful(Parse("file:///home/user/data.txt"))
		Expect(ep.Scheme()).To(Equal(File))
		Expect(ep.Path()).To(Equal("/home/user/data.txt"))
		Expect(ep.String()).To(Equal("file:///home/user/data.txt"))
	})

	It("accepts the scheme-only form for path endpoints", func() {
		ep := Successful(Parse("unix:/run/foo.sock"))
		Expect(ep.Path()).To(Equal("/run/foo.sock"))
		Expect(ep.String()).To(Equal("unix:///run/foo.sock"))
	})

	It("rejects empty paths", func() {
		for _, uri := range []string{"unix://", "file://"} {
			_, err := Parse(uri)
			var invalid *InvalidAddressError
			Expect(errors.As(err, &invalid)).To(BeTrue(), "uri %q", uri)
		}
	})

	It("round-trips endpoints through their canonical form", func() {
		for _, uri := range []string{
			"tcp://127.0.0.1:9000",
			"udp://[fe80::1]:53",
			"http://example.com:80",
			"mqtt://broker.local:1883",
			"wss://example.com:443",
			"redis://cache.internal:7000",
			"unix:///tmp/socket.sock",
			"file:///home/user/data.txt",
		} {
			ep := Successful(Parse(uri))
			Expect(ep.String()).To(Equal(uri))
			Expect(Successful(Parse(ep.String()))).To(Equal(ep), "uri %q", uri)
		}
	})

	It("constructs endpoints programmatically", func() {
		ep := Successful(New(MQTT, types.DomainHost("broker.local"), 1883))
		Expect(ep).To(Equal(Successful(Parse("mqtt://broker.local"))))

		ep = Successful(NewPath(Unix, "/tmp/socket.sock"))
		Expect(ep).To(Equal(Successful(Parse("unix:///tmp/socket.sock"))))

		_, err := New(Unix, types.DomainHost("example.com"), 1)
		Expect(err).To(MatchError(ErrInvalidScheme))
		_, err = New(TCP, types.HostAddr{}, 1)
		var invalid *InvalidAddressError
		Expect(errors.As(err, &invalid)).To(BeTrue())
		_, err = NewPath(TCP, "/tmp/socket.sock")
		Expect(err).To(MatchError(ErrInvalidScheme))
		_, err = NewPath(File, "")
		Expect(errors.As(err, &invalid)).To(BeTrue())
	})

	It("marshals to and unmarshals from text", func() {
		ep := Successful(Parse("coaps://[::1]:5684"))
		Expect(Successful(ep.MarshalText())).To(Equal([]byte("coaps://[::1]:5684")))

		var back Endpoint
		Expect(back.UnmarshalText([]byte("coaps://[::1]:5684"))).To(Succeed())
		Expect(back).To(Equal(ep))

		Expect(back.UnmarshalText([]byte("xyz://host:1"))).To(MatchError(ErrInvalidScheme))
	})

})

var _ = Describe("schemes", func() {

	It("renders scheme names", func() {
		Expect(MQTTS.String()).To(Equal("mqtts"))
		Expect(File.String()).To(Equal("file"))
		Expect(Scheme(-1).String()).To(Equal("Scheme(-1)"))
	})

	It("distinguishes network from path schemes", func() {
		Expect(CoAP.IsNetwork()).To(BeTrue())
		Expect(Unix.IsNetwork()).To(BeFalse())
		Expect(File.IsNetwork()).To(BeFalse())
		Expect(Scheme(42).IsNetwork()).To(BeFalse())
	})

	It("knows its default ports", func() {
		port, ok := AMQP.DefaultPort()
		Expect(ok).To(BeTrue())
		Expect(port).To(Equal(uint16(5672)))
		_, ok = TCP.DefaultPort()
		Expect(ok).To(BeFalse())
		_, ok = Unix.DefaultPort()
		Expect(ok).To(BeFalse())
	})

})

func itoa(port uint16) string {
	return strconv.Itoa(int(port))
}
