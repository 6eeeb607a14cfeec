package series

import (
	"errors"

	"github.com/nao1215/taskseries/internal/model"
)

// ErrEmptyPattern is returned when a rule spec has no pattern.
var ErrEmptyPattern = errors.New("rule pattern must not be empty")

// Classifier assigns series to task names using an ordered rule list.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier over rules. With no rules it uses DefaultRules.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns the classifier's rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the series of the first rule matching task.
func (c *Classifier) Classify(task string) (string, bool) {
	for _, r := range c.rules {
		if series, ok := r.Match(task); ok {
			return series, true
		}
	}
	return "", false
}

// SeriesOf is like Classify but falls back to model.Uncategorized.
func (c *Classifier) SeriesOf(task string) string {
	if series, ok := c.Classify(task); ok {
		return series
	}
	return model.Uncategorized
}

// DefaultRules returns the built-in rule table, most specific first.
func DefaultRules() []Rule {
	return []Rule{
		// Explicit gzy and xm_jj groups take precedence over everything.
		MustCompile(`yx_gzy_jj`, "gzy"),
		MustCompile(`xm_jj`, "xm_jj"),

		// jj series overrides. The xm_jj_* variants are shadowed by xm_jj
		// above and only apply when that rule is removed.
		MustCompile(`jj_A\d+`, "jj_A"),
		MustCompile(`xm_jj_Y\d+_072[5-7]`, "jj_Y"),
		MustCompile(`xm_jj_jy_07(?:16|24)`, "jj_jy"),

		// jja families, e.g. lt_LKltjja20-3, lt_jja22-2-9, LKXjja22-3.
		MustCompile(`lt_LKltjja[\d-]+`, ""),
		MustCompile(`lt_LXjja[\d-]+`, ""),
		MustCompile(`lt_LKjja[\d-]+`, ""),
		MustCompile(`lt_jja[\d.-]+`, ""),
		MustCompile(`lt_ltjja[\d-]+`, ""),
		MustCompile(`LKXjja[\d-]+`, ""),
		MustCompile(`LKjja[\d-]+`, ""),
		MustCompile(`Lk12a20-1`, ""),
		MustCompile(`jja[\d-]+`, ""),

		// LXda11-1 -> LXda11, LXd10-2 -> LXd10, x210, u260.
		MustCompile(`LXda\d+`, ""),
		MustCompile(`LXd\d+`, ""),
		MustCompile(`x\d+`, ""),
		MustCompile(`u\d+`, ""),

		MustCompile(`rt[_-]dj`, "rt_dj"),
		MustCompile(`rz_dj`, "rz_dj"),
		MustCompile(`rz[_-]bc`, "rz_bc"),
		MustCompile(`apbc\d+`, ""),

		// bc-v22 -> v22, bc_v20 -> v20, kj-bc-v20 -> v20.
		MustCompile(`bc[_-](v\d+)`, ""),
		// Standalone v20 entries such as v20-0610 or v20-bc-0612.
		MustCompile(`v20[-_\s]`, "v20"),
		// 0611-bc belongs to the plain bc series.
		MustCompile(`\d{4}-bc`, "bc"),
		// bc01, 0628_bc01.
		MustCompile(`bc0\d+`, ""),
		MustCompile(`rt_bc`, "rt_bc"),
		// bc_0420 -> bc.
		MustCompile(`bc_`, "bc"),
	}
}
