package prometheus

import (
	"bytes"
	"io"
	"net/http"
	"sort"

	goUX "github.com/MrEthical07/goUX"
	"github.com/MrEthical07/goUX/metrics/export/internaldefs"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

var textFormat = expfmt.NewFormat(expfmt.TypeTextPlain)

// MetricsSource is implemented by *goUX.Engine.
type MetricsSource interface {
	MetricsSnapshot() goUX.MetricsSnapshot
	EventsDropped() uint64
}

// typedDropSource is implemented by sources that break drops down by event
// type, such as *goUX.Engine.
type typedDropSource interface {
	EventsDroppedByType() map[string]uint64
}

// PrometheusExporter turns engine snapshots into Prometheus metric families.
type PrometheusExporter struct {
	source MetricsSource
}

// NewPrometheusExporter returns an exporter reading from engine.
func NewPrometheusExporter(engine *goUX.Engine) *PrometheusExporter {
	return &PrometheusExporter{source: engine}
}

// NewPrometheusExporterFromSource returns an exporter reading from source.
func NewPrometheusExporterFromSource(source MetricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler serves the text exposition on every request.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", string(textFormat))
		_ = encode(w, p.Gather())
	})
}

// Render returns the text exposition, or "" when metrics are disabled and
// nothing was dropped.
func (p *PrometheusExporter) Render() string {
	families := p.Gather()
	if len(families) == 0 {
		return ""
	}
	var b bytes.Buffer
	b.Grow(4096)
	if err := encode(&b, families); err != nil {
		return ""
	}
	return b.String()
}

// Gather builds one family per engine counter and histogram plus the
// dropped-events counter, in a fixed order. It returns nil when the source
// has nothing to report.
func (p *PrometheusExporter) Gather() []*dto.MetricFamily {
	if p == nil || p.source == nil {
		return nil
	}

	snapshot := p.source.MetricsSnapshot()
	dropped := p.source.EventsDropped()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 && dropped == 0 {
		return nil
	}

	families := make([]*dto.MetricFamily, 0, len(internaldefs.CounterDefs)+len(internaldefs.HistogramDefs)+1)
	for _, def := range internaldefs.CounterDefs {
		families = append(families, counterFamily(def.Name, def.Help, snapshot.Counters[def.ID]))
	}
	for _, def := range internaldefs.HistogramDefs {
		raw := internaldefs.NormalizeBuckets(snapshot.Histograms[def.ID])
		cumulative := internaldefs.CumulativeBuckets(raw)
		sum := snapshot.HistogramSums[def.ID].Seconds()
		families = append(families, histogramFamily(def.Name, def.Help, cumulative, sum))
	}
	families = append(families, counterFamily(internaldefs.EventsDroppedName, internaldefs.EventsDroppedHelp, dropped))
	if typed, ok := p.source.(typedDropSource); ok {
		if mf := droppedByTypeFamily(typed.EventsDroppedByType()); mf != nil {
			families = append(families, mf)
		}
	}
	return families
}

func encode(w io.Writer, families []*dto.MetricFamily) error {
	enc := expfmt.NewEncoder(w, textFormat)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func counterFamily(name, help string, value uint64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{
			Counter: &dto.Counter{Value: proto.Float64(float64(value))},
		}},
	}
}

// droppedByTypeFamily returns nil when nothing was dropped. Samples are
// ordered by type.
func droppedByTypeFamily(byType map[string]uint64) *dto.MetricFamily {
	if len(byType) == 0 {
		return nil
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	metrics := make([]*dto.Metric, 0, len(types))
	for _, t := range types {
		metrics = append(metrics, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: proto.String("type"), Value: proto.String(t)}},
			Counter: &dto.Counter{Value: proto.Float64(float64(byType[t]))},
		})
	}
	return &dto.MetricFamily{
		Name:   proto.String(internaldefs.EventsDroppedByTypeName),
		Help:   proto.String(internaldefs.EventsDroppedByTypeHelp),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: metrics,
	}
}

// histogramFamily carries the finite bounds only; the encoder adds the +Inf
// bucket from the sample count.
func histogramFamily(name, help string, cumulative [8]uint64, sum float64) *dto.MetricFamily {
	buckets := make([]*dto.Bucket, 0, len(internaldefs.HistogramBoundValues))
	for i, bound := range internaldefs.HistogramBoundValues {
		buckets = append(buckets, &dto.Bucket{
			UpperBound:      proto.Float64(bound),
			CumulativeCount: proto.Uint64(cumulative[i]),
		})
	}
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_HISTOGRAM.Enum(),
		Metric: []*dto.Metric{{
			Histogram: &dto.Histogram{
				SampleCount: proto.Uint64(cumulative[len(cumulative)-1]),
				SampleSum:   proto.Float64(sum),
				Bucket:      buckets,
			},
		}},
	}
}
