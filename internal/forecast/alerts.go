package forecast

import "fmt"

type Thresholds struct {
	LowBalance int64
	Overspend  int64
}

func DefaultThresholds() Thresholds {
	return Thresholds{LowBalance: 50, Overspend: 50}
}

func Alerts(weeks []Week, th Thresholds) []string {
	alerts := []string{}
	for _, w := range weeks {
		if w.Balance < th.LowBalance {
			alerts = append(alerts, fmt.Sprintf("Week %d: Balance dropped below %d", w.Week, th.LowBalance))
		}
		if w.NetChange < 0 && -w.NetChange > th.Overspend {
			alerts = append(alerts, fmt.Sprintf("Week %d: High overspending detected", w.Week))
		}
	}
	return alerts
}
