package score

import (
	"github.com/jsphweid/tabscore/constants"
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/rhythm"
	"github.com/jsphweid/tabscore/tab"
	"github.com/jsphweid/tabscore/util"
	"github.com/pkg/errors"
)

// Config is the context a score starts with. Parallel nodes may override
// everything except Track (which their keys set), StartTime and MaxDepth.
type Config struct {
	Rhythm          string
	Library         model.SymbolTable
	Velocity        string
	VelocityLibrary model.SymbolTable
	Track           string
	StartTime       float64
	// MaxDepth bounds tree nesting; zero uses constants.GetMaxDepth().
	MaxDepth int
}

// context is copied on the way down, so an override never leaks to a
// sibling.
type context struct {
	rhythm          string
	library         model.SymbolTable
	velocity        string
	velocityLibrary model.SymbolTable
	track           string
	startTime       float64
	depth           int
	maxDepth        int
}

// Compile compiles a score tree into named tracks of clips. On failure no
// partial result is returned.
func Compile(node *Node, cfg Config) (*model.Score, error) {
	if node == nil {
		return nil, model.NewError(model.MalformedScore, "", "empty score")
	}
	ctx := context{
		rhythm:          cfg.Rhythm,
		library:         cfg.Library,
		velocity:        cfg.Velocity,
		velocityLibrary: cfg.VelocityLibrary,
		track:           cfg.Track,
		startTime:       cfg.StartTime,
		maxDepth:        cfg.MaxDepth,
	}
	if ctx.maxDepth <= 0 {
		ctx.maxDepth = constants.GetMaxDepth()
	}

	acc := NewAccumulator()
	region, err := compile(node, ctx, acc)
	if err != nil {
		return nil, err
	}
	return &model.Score{
		StartTime:   cfg.StartTime,
		Duration:    region.Duration,
		Tracks:      acc.Tracks(),
		Arrangement: region,
	}, nil
}

// compile appends the clips of node to acc and returns the region it spans.
func compile(node *Node, ctx context, acc *Accumulator) (model.Region, error) {
	if node == nil {
		return model.Region{}, model.NewError(model.MalformedScore, ctx.track, "empty score node")
	}
	if ctx.depth > ctx.maxDepth {
		return model.Region{}, model.NewError(model.DepthExceeded, ctx.track, "score is nested deeper than %d", ctx.maxDepth)
	}

	region := model.Region{Kind: node.Kind.String(), Track: ctx.track, StartTime: ctx.startTime}
	switch node.Kind {
	case Sequence:
		for _, child := range node.Children {
			c := ctx
			c.startTime = ctx.startTime + region.Duration
			c.depth++
			r, err := compile(child, c, acc)
			if err != nil {
				return model.Region{}, err
			}
			region.Duration += r.Duration
			region.Regions = append(region.Regions, r)
		}
		return region, nil

	case Parallel:
		local := ctx
		o := node.Overrides
		if o.Rhythm != nil {
			local.rhythm = *o.Rhythm
		}
		if o.Library != nil {
			local.library = o.Library
		}
		if o.Velocity != nil {
			local.velocity = *o.Velocity
		}
		if o.VelocityLibrary != nil {
			local.velocityLibrary = o.VelocityLibrary
		}

		for _, entry := range node.Entries {
			c := local
			if !entry.SameTrack {
				c.track = entry.Track
			}
			c.depth++
			r, err := compile(entry.Node, c, acc)
			if err != nil {
				return model.Region{}, err
			}
			region.Duration = util.Max(region.Duration, r.Duration)
			region.Regions = append(region.Regions, r)
		}
		return region, nil

	case Leaf:
		d, err := compileLeaf(node.Pattern, ctx, acc)
		if err != nil {
			return model.Region{}, err
		}
		region.Duration = d
		return region, nil
	}

	return model.Region{}, model.NewError(model.MalformedScore, "", "invalid node kind %v", node.Kind)
}

func compileLeaf(p string, ctx context, acc *Accumulator) (float64, error) {
	if ctx.rhythm == "" {
		return 0, model.NewError(model.MissingContext, p, "found a pattern, but could not find a rhythm")
	}
	if ctx.library == nil {
		return 0, model.NewError(model.MissingContext, p, "found a pattern, but could not find a nLibrary")
	}
	if ctx.track == "" {
		return 0, model.NewError(model.MissingContext, p, "found a pattern outside of any track")
	}

	r, err := rhythm.Compile(ctx.rhythm)
	if err != nil {
		return 0, errors.Wrapf(err, "track %q", ctx.track)
	}
	notes, err := tab.Compile(ctx.rhythm, p, ctx.library, tab.WithVelocity(ctx.velocity, ctx.velocityLibrary))
	if err != nil {
		return 0, errors.Wrapf(err, "track %q", ctx.track)
	}

	duration := r.Duration()
	acc.Append(ctx.track, model.Clip{
		Notes:     notes,
		StartTime: ctx.startTime,
		Duration:  duration,
	})
	return duration, nil
}
