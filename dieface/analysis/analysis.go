// Package analysis estimates how often each side of a die ends up on top when
// it comes to rest in a uniformly random orientation.
package analysis

import (
	"io"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/schollz/progressbar/v3"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/smell-of-curry/dieface/dieface/internal"
	"github.com/smell-of-curry/dieface/dieface/util"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// seedStream is the second PCG word; only Options.Seed is configurable.
const seedStream = 0x9e3779b97f4a7c15

// Options ...
type Options struct {
	// Seed makes runs reproducible.
	Seed uint64
	// Up is the up reference. The zero vector means die.WorldUp.
	Up mgl64.Vec3
	// Progress receives a progress bar when set.
	Progress io.Writer
}

// Report holds the result of a sampling run.
type Report struct {
	Samples   int
	Sides     []die.Side
	Counts    []int
	Unmatched int
}

// Sample queries d in n random orientations.
func Sample(d *die.Die, n int, opts Options) Report {
	d = d.Clone()
	up := opts.Up
	if up == (mgl64.Vec3{}) {
		up = die.WorldUp
	}
	r := rand.New(rand.NewPCG(opts.Seed, seedStream))

	report := Report{Samples: n, Sides: d.Sides, Counts: make([]int, d.Len())}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("Rolling"),
			progressbar.OptionShowCount(),
		)
	}
	step := max(n/internal.ProgressSteps, 1)

	for i := range n {
		if m, ok := d.Match(die.RandomOrientation(r), up); ok {
			report.Counts[m.Index]++
		} else {
			report.Unmatched++
		}
		if bar != nil && (i+1)%step == 0 {
			_ = bar.Add(step)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return report
}

// Frequency returns the share of samples that landed on side i.
func (r Report) Frequency(i int) float64 {
	if r.Samples == 0 || i < 0 || i >= len(r.Counts) {
		return 0
	}
	return float64(r.Counts[i]) / float64(r.Samples)
}

// ValueCounts sums the counts of sides sharing a value.
func (r Report) ValueCounts() map[int]int {
	counts := make(map[int]int, len(r.Sides))
	for i, s := range r.Sides {
		counts[s.Value] += r.Counts[i]
	}
	return counts
}

// MaxDeviation is the largest difference between the frequency of a side and
// the frequency a perfectly fair die would give it.
func (r Report) MaxDeviation() float64 {
	if len(r.Sides) == 0 {
		return 0
	}
	fair := 1 / float64(len(r.Sides))

	var dev float64
	for i := range r.Sides {
		dev = math.Max(dev, math.Abs(r.Frequency(i)-fair))
	}
	return dev
}

// String ...
func (r Report) String() string {
	p := message.NewPrinter(language.English)

	var b strings.Builder
	b.WriteString(p.Sprintf("%d samples\n", r.Samples))
	for i, s := range r.Sides {
		b.WriteString(p.Sprintf("  side %d  value %d  normal %s  %d (%.2f%%)\n",
			i, s.Value, util.FormatVec3(s.Normal), r.Counts[i], r.Frequency(i)*100))
	}
	if r.Unmatched > 0 {
		b.WriteString(p.Sprintf("  unmatched %d\n", r.Unmatched))
	}
	b.WriteString(p.Sprintf("max deviation %.2f%%", r.MaxDeviation()*100))
	return b.String()
}
