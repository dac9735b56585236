package statistics

import (
	"github.com/markusressel/pid2go/internal/loops"
	"github.com/prometheus/client_golang/prometheus"
)

const loopSubsystem = "loop"

type LoopCollector struct {
	loops []*loops.Loop

	setPoint     *prometheus.Desc
	input        *prometheus.Desc
	error        *prometheus.Desc
	proportional *prometheus.Desc
	integral     *prometheus.Desc
	derivative   *prometheus.Desc
	output       *prometheus.Desc
	applied      *prometheus.Desc
	avgAbsError  *prometheus.Desc
	updates      *prometheus.Desc
	saturations  *prometheus.Desc
}

func NewLoopCollector(loopList ...*loops.Loop) *LoopCollector {
	return &LoopCollector{
		loops:        loopList,
		setPoint:     newLoopDesc("setpoint", "Target value of the process variable"),
		input:        newLoopDesc("input", "Process variable used in the last update"),
		error:        newLoopDesc("error", "Difference between setpoint and process variable of the last update"),
		proportional: newLoopDesc("proportional", "Proportional term of the controller output"),
		integral:     newLoopDesc("integral", "Integral term of the controller output"),
		derivative:   newLoopDesc("derivative", "Derivative term of the controller output"),
		output:       newLoopDesc("output", "Unclamped controller output"),
		applied:      newLoopDesc("applied", "Output value written to the loop output"),
		avgAbsError:  newLoopDesc("avg_abs_error", "Moving average of the absolute error over the history size"),
		updates:      newLoopDesc("updates_total", "Number of completed updates"),
		saturations:  newLoopDesc("saturations_total", "Number of updates whose output was clamped to the limit"),
	}
}

func newLoopDesc(name string, help string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, name),
		help,
		[]string{"id"}, nil,
	)
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.setPoint
	ch <- collector.input
	ch <- collector.error
	ch <- collector.proportional
	ch <- collector.integral
	ch <- collector.derivative
	ch <- collector.output
	ch <- collector.applied
	ch <- collector.avgAbsError
	ch <- collector.updates
	ch <- collector.saturations
}

// Collect implements required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	for _, loop := range collector.loops {
		s := loop.Snapshot()
		id := s.Id

		ch <- prometheus.MustNewConstMetric(collector.setPoint, prometheus.GaugeValue, s.SetPoint, id)
		ch <- prometheus.MustNewConstMetric(collector.input, prometheus.GaugeValue, s.State.Input, id)
		ch <- prometheus.MustNewConstMetric(collector.error, prometheus.GaugeValue, s.State.Error, id)
		ch <- prometheus.MustNewConstMetric(collector.proportional, prometheus.GaugeValue, s.State.P, id)
		ch <- prometheus.MustNewConstMetric(collector.integral, prometheus.GaugeValue, s.State.I, id)
		ch <- prometheus.MustNewConstMetric(collector.derivative, prometheus.GaugeValue, s.State.D, id)
		ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, s.Output, id)
		ch <- prometheus.MustNewConstMetric(collector.applied, prometheus.GaugeValue, s.Applied, id)
		ch <- prometheus.MustNewConstMetric(collector.avgAbsError, prometheus.GaugeValue, s.AvgAbsError, id)
		ch <- prometheus.MustNewConstMetric(collector.updates, prometheus.CounterValue, float64(s.Updates), id)
		ch <- prometheus.MustNewConstMetric(collector.saturations, prometheus.CounterValue, float64(s.Saturations), id)
	}
}
