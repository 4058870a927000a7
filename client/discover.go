package client

import (
	"io/ioutil"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/pkg/errors"
)

const mdnsService = "_hwservice._tcp"

// Discover finds hardware service hosts advertising on the local network and
// returns their base addresses.
func Discover(d time.Duration) ([]string, error) {
	log.SetOutput(ioutil.Discard)
	defer log.SetOutput(os.Stderr)

	ch := make(chan *mdns.ServiceEntry, 5)
	defer close(ch)
	mdns.Lookup(mdnsService, ch)

	timeout := time.After(d)
	possibilities := []string{}
	for {
		select {
		case entry := <-ch:
			possibility := "http://" + net.JoinHostPort(entry.AddrV4.String(), strconv.Itoa(entry.Port))
			possibilities = append(possibilities, possibility)
		case <-timeout:
			return possibilities, nil
		}
	}
}

type mdnsRegistry struct {
	timeout time.Duration
}

// NewRegistry returns a registry that resolves the well-known service name
// through mdns discovery.
func NewRegistry(timeout time.Duration) ServiceRegistry {
	return &mdnsRegistry{timeout: timeout}
}

func (r *mdnsRegistry) Lookup(name string) (HardwareService, error) {
	if name != ServiceName {
		return nil, errors.Errorf("unknown service: %s", name)
	}
	addresses, err := Discover(r.timeout)
	if err != nil {
		return nil, errors.Wrap(err, "hardware service discovery failed")
	}
	if len(addresses) == 0 {
		return nil, errors.Errorf("no hosts advertising %s", mdnsService)
	}
	return NewHTTPService(addresses[0]), nil
}

type staticRegistry struct {
	address string
}

// NewStaticRegistry returns a registry pinned to a single host address,
// bypassing discovery.
func NewStaticRegistry(address string) ServiceRegistry {
	return &staticRegistry{address: address}
}

func (r *staticRegistry) Lookup(name string) (HardwareService, error) {
	if name != ServiceName {
		return nil, errors.Errorf("unknown service: %s", name)
	}
	return NewHTTPService(r.address), nil
}
