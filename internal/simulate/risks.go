package simulate

import (
	"fmt"

	"github.com/josh-kwaku/economy-hud/internal/domain"
)

var lowThresholds = []struct {
	resource domain.ResourceKind
	min      int64
}{
	{domain.ResourcePrimary, 100},
	{domain.ResourceSecondary, 5},
	{domain.ResourceTertiary, 10},
}

// Risks flags resources whose lowest point fell under its threshold and any
// resource that finished the week negative.
func Risks(res Result) []string {
	alerts := []string{}
	for _, th := range lowThresholds {
		if low := res.Lowest.Get(th.resource); low < th.min {
			alerts = append(alerts, fmt.Sprintf("Week simulation: %s balance dropped to %d (below %d threshold)",
				th.resource.DisplayName(), low, th.min))
		}
	}
	for _, kind := range domain.ResourceKinds() {
		if final := res.Final.Get(kind); final < 0 {
			alerts = append(alerts, fmt.Sprintf("Week simulation: %s balance went negative: %d",
				kind.DisplayName(), final))
		}
	}
	return alerts
}
