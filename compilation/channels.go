package compilation

import (
	"sort"

	"github.com/masnyjimmy/asyncdocket/docket"
)

// ChannelsService runs the registered scanners and merges their findings so
// that every channel name appears once.
type ChannelsService struct {
	scanners []ChannelScanner
}

func NewChannelsService(scanners ...ChannelScanner) *ChannelsService {
	return &ChannelsService{scanners: scanners}
}

// Channels scans the docket in scanner order. When several entries share a
// channel name, later scalar values win, bindings are unioned by protocol
// and messages by name.
func (s *ChannelsService) Channels(d *docket.Docket, schemas *SchemasService) (map[string]Channel, error) {
	out := make(map[string]Channel)

	for _, scanner := range s.scanners {
		found, err := scanner.Scan(d, schemas)
		if err != nil {
			return nil, err
		}
		for _, entry := range found {
			existing, ok := out[entry.Name]
			if !ok {
				out[entry.Name] = entry.Channel
				continue
			}
			out[entry.Name] = existing.merge(entry.Channel)
		}
	}

	return out, nil
}

// ChannelNames returns the keys of channels in sorted order.
func ChannelNames(channels map[string]Channel) []string {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
