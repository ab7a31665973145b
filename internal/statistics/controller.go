package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/radioburst/catpower/internal/memory"
	"github.com/radioburst/catpower/internal/telemetry"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	store       *telemetry.Store
	driveMemory *memory.DriveMemory

	power       *prometheus.Desc
	targetPower *prometheus.Desc
	drive       *prometheus.Desc
	swr         *prometheus.Desc
	frequency   *prometheus.Desc
	historyLen  *prometheus.Desc
	learned     *prometheus.Desc
}

func NewControllerCollector(store *telemetry.Store, driveMemory *memory.DriveMemory) *ControllerCollector {
	return &ControllerCollector{
		store:       store,
		driveMemory: driveMemory,
		power: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "power_watts"),
			"Smoothed power reading of the most recent control cycle",
			nil, nil,
		),
		targetPower: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "target_power_watts"),
			"Currently configured target power",
			nil, nil,
		),
		drive: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "drive_level"),
			"Current drive level",
			nil, nil,
		),
		swr: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "swr"),
			"Smoothed standing wave ratio",
			nil, nil,
		),
		frequency: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "frequency_hz"),
			"Current operating frequency",
			[]string{"band"}, nil,
		),
		historyLen: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "history_length"),
			"Number of readings in the telemetry history",
			nil, nil,
		),
		learned: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "learned_entries"),
			"Number of learned drive levels",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.power
	ch <- collector.targetPower
	ch <- collector.drive
	ch <- collector.swr
	ch <- collector.frequency
	ch <- collector.historyLen
	ch <- collector.learned
}

func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	if reading, ok := collector.store.LatestReading(); ok {
		ch <- prometheus.MustNewConstMetric(collector.power, prometheus.GaugeValue, reading.Power)
		ch <- prometheus.MustNewConstMetric(collector.drive, prometheus.GaugeValue, float64(reading.Drive))
		ch <- prometheus.MustNewConstMetric(collector.swr, prometheus.GaugeValue, reading.Swr)
	}

	ch <- prometheus.MustNewConstMetric(collector.targetPower, prometheus.GaugeValue, float64(collector.store.GetTargetPower()))

	hz, band := collector.store.GetFrequency()
	ch <- prometheus.MustNewConstMetric(collector.frequency, prometheus.GaugeValue, float64(hz), band)

	ch <- prometheus.MustNewConstMetric(collector.historyLen, prometheus.GaugeValue, float64(collector.store.HistoryLen()))
	ch <- prometheus.MustNewConstMetric(collector.learned, prometheus.GaugeValue, float64(collector.driveMemory.Len()))
}
