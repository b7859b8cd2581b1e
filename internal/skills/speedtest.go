package skills

import (
	"context"
	"errors"
	"fmt"

	"github.com/showwin/speedtest-go/speedtest"
)

// Meter measures the connection in megabits per second.
type Meter interface {
	Measure(ctx context.Context) (download, upload float64, err error)
}

type SpeedTest struct {
	Meter Meter
}

func (s *SpeedTest) Handle(ctx context.Context, _ Request) (string, error) {
	down, up, err := s.Meter.Measure(ctx)
	if err != nil {
		return "", fail(KindUpstream, "Sorry, I couldn't check the internet speed", err)
	}
	return fmt.Sprintf("Download speed is %.2f Mbps and upload speed is %.2f Mbps", down, up), nil
}

// Speedtest measures against the closest speedtest.net server.
type Speedtest struct{}

func (Speedtest) Measure(ctx context.Context) (float64, float64, error) {
	client := speedtest.New()

	servers, err := client.FetchServerListContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch servers: %w", err)
	}

	targets, err := servers.FindServer(nil)
	if err != nil {
		return 0, 0, fmt.Errorf("find server: %w", err)
	}
	if len(targets) == 0 {
		return 0, 0, errors.New("no speedtest server")
	}

	s := targets[0]
	if err := s.PingTestContext(ctx, nil); err != nil {
		return 0, 0, fmt.Errorf("ping: %w", err)
	}
	if err := s.DownloadTestContext(ctx); err != nil {
		return 0, 0, fmt.Errorf("download: %w", err)
	}
	if err := s.UploadTestContext(ctx); err != nil {
		return 0, 0, fmt.Errorf("upload: %w", err)
	}
	defer s.Context.Reset()

	return s.DLSpeed.Mbps(), s.ULSpeed.Mbps(), nil
}
