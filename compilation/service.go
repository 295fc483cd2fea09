package compilation

import "github.com/masnyjimmy/asyncdocket/docket"

// Service serves the AsyncAPI document of a docket. The document is
// regenerated on each call, nothing is cached.
type Service struct {
	docket   *docket.Docket
	scanners []ChannelScanner
}

// NewService creates a Service. Without scanners DefaultScanners are used.
func NewService(d *docket.Docket, scanners ...ChannelScanner) *Service {
	if len(scanners) == 0 {
		scanners = DefaultScanners()
	}
	return &Service{docket: d, scanners: scanners}
}

func (s *Service) AsyncAPI() (*Document, error) {
	return Compile(s.docket, s.scanners...)
}
