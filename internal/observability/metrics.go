package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metric names.
const (
	MetricNameAttacksTotal   = "skirmish_attacks_total"
	MetricNameDamageDealt    = "skirmish_damage_dealt_total"
	MetricNameDamageAbsorbed = "skirmish_damage_absorbed_total"
	MetricNameAttackDamage   = "skirmish_attack_damage"

	LabelSuccess = "success"
	LabelWeapon  = "weapon"
)

// DamageBuckets spans dummy-weapon chip damage up to high-level crits.
var DamageBuckets = []float64{1, 5, 10, 20, 40, 60, 100, 150, 250}

// CombatMetrics records attack outcomes. It satisfies combat.Recorder and is
// safe for concurrent use.
type CombatMetrics struct {
	attacks  *prometheus.CounterVec
	dealt    *prometheus.CounterVec
	absorbed *prometheus.CounterVec
	damage   *prometheus.HistogramVec
}

// NewCombatMetrics registers the combat collectors with reg.
//
// Precondition: reg must be non-nil and must not already hold these metrics.
// Postcondition: Returns a CombatMetrics whose collectors are registered.
func NewCombatMetrics(reg prometheus.Registerer) *CombatMetrics {
	f := promauto.With(reg)
	return &CombatMetrics{
		attacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameAttacksTotal,
			Help: "Attacks attempted, by outcome and weapon.",
		}, []string{LabelSuccess, LabelWeapon}),
		dealt: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameDamageDealt,
			Help: "Damage applied to defenders after armor.",
		}, []string{LabelWeapon}),
		absorbed: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameDamageAbsorbed,
			Help: "Damage stopped by armor.",
		}, []string{LabelWeapon}),
		damage: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricNameAttackDamage,
			Help:    "Damage applied per successful attack.",
			Buckets: DamageBuckets,
		}, []string{LabelWeapon}),
	}
}

// ObserveAttack records one attack. Damage figures are only recorded for
// successful attacks.
func (m *CombatMetrics) ObserveAttack(success bool, weapon string, damage, absorbed int) {
	m.attacks.WithLabelValues(strconv.FormatBool(success), weapon).Inc()
	if !success {
		return
	}
	m.dealt.WithLabelValues(weapon).Add(float64(damage))
	m.absorbed.WithLabelValues(weapon).Add(float64(absorbed))
	m.damage.WithLabelValues(weapon).Observe(float64(damage))
}

// CombatSummary is a flattened view of the combat metrics.
type CombatSummary struct {
	Attacks         float64
	FailedAttacks   float64
	DamageDealt     float64
	DamageAbsorbed  float64
	DealtByWeapon   map[string]float64
	AverageHitValue float64
}

// Summarize gathers from g and folds the combat metric families into a
// CombatSummary.
//
// Postcondition: Returns a summary with non-nil maps, or the gather error.
func Summarize(g prometheus.Gatherer) (*CombatSummary, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	s := &CombatSummary{DealtByWeapon: make(map[string]float64)}
	for _, mf := range families {
		switch mf.GetName() {
		case MetricNameAttacksTotal:
			for _, m := range mf.GetMetric() {
				if labelValue(m, LabelSuccess) == "true" {
					s.Attacks += m.GetCounter().GetValue()
				} else {
					s.FailedAttacks += m.GetCounter().GetValue()
				}
			}
		case MetricNameDamageDealt:
			for _, m := range mf.GetMetric() {
				v := m.GetCounter().GetValue()
				s.DamageDealt += v
				s.DealtByWeapon[labelValue(m, LabelWeapon)] += v
			}
		case MetricNameDamageAbsorbed:
			for _, m := range mf.GetMetric() {
				s.DamageAbsorbed += m.GetCounter().GetValue()
			}
		}
	}
	if s.Attacks > 0 {
		s.AverageHitValue = s.DamageDealt / s.Attacks
	}
	return s, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
