/*
Command styledump resolves the styles of a scene and prints the result.

A scene is a YAML file describing a tree of elements with ids, classes,
pseudo-classes and inline styles. Stylesheets are applied in the order
given:

	styledump --scene ui.yaml --css base.css --css theme.css --props width,color

With --at, the clock is advanced after the first frame, showing transitions
and animations in flight.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/npillmayer/restyle/animation"
	"github.com/npillmayer/restyle/style/styledbg"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// tracer traces with key 'restyle.cli'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cli")
}

// options holds the flags of the command.
type options struct {
	Scene    string
	CSS      []string
	Config   string
	At       time.Duration
	Props    []string
	Play     []string // id=animation
	Duration time.Duration
	GraphViz bool
	Profile  string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "styledump",
		Short: "Resolve the styles of a scene",
		Long:  "Builds a scene from YAML, applies stylesheets and prints the resolved styles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Profile {
			case "":
			case "cpu":
				defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
			case "mem":
				defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
			default:
				return fmt.Errorf("invalid profile %q: must be cpu or mem", opts.Profile)
			}
			return run(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Scene, "scene", "", "scene file (YAML)")
	f.StringArrayVar(&opts.CSS, "css", nil, "stylesheet file, may be repeated")
	f.StringVar(&opts.Config, "config", "", "configuration file (YAML)")
	f.DurationVar(&opts.At, "at", 0, "advance the clock by this duration after the first frame")
	f.StringSliceVar(&opts.Props, "props", nil, "properties to print (default: a common selection)")
	f.StringArrayVar(&opts.Play, "play", nil, "play an animation, as id=name")
	f.DurationVar(&opts.Duration, "duration", time.Second, "duration of animations started with --play")
	f.BoolVar(&opts.GraphViz, "dot", false, "output GraphViz DOT instead of a tree")
	f.StringVar(&opts.Profile, "profile", "", "write a cpu or mem profile")
	cmd.MarkFlagRequired("scene")
	return cmd
}

func run(opts *options, out, errout io.Writer) error {
	conf, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "tracing", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	//
	data, err := os.ReadFile(opts.Scene)
	if err != nil {
		return err
	}
	root, err := ParseScene(data)
	if err != nil {
		return err
	}
	scene, err := BuildScene(root, conf)
	if err != nil {
		return err
	}
	eng := scene.Engine
	for _, path := range opts.CSS {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := eng.AddStylesheet(string(text)); err != nil {
			fmt.Fprintf(errout, "warning: %s: %v\n", path, err)
		}
	}
	start := time.Unix(0, 0)
	eng.Update(start)
	for _, p := range opts.Play {
		if err := play(scene, p, opts.Duration, start); err != nil {
			return err
		}
	}
	if opts.At > 0 {
		eng.Update(start.Add(opts.At))
	}
	tracer().Infof("dirty flags after update: %v", eng.Flags())
	if opts.GraphViz {
		return styledbg.ToGraphViz(eng, scene.Tree, out, opts.Props)
	}
	_, err = fmt.Fprintln(out, styledbg.Print(eng, scene.Tree, opts.Props))
	return err
}

func play(scene *Scene, arg string, d time.Duration, start time.Time) error {
	id, name, _ := strings.Cut(arg, "=")
	e, ok := scene.Names[id]
	if !ok {
		return fmt.Errorf("--play %s: no entity with id %q", arg, id)
	}
	desc := animation.Description{Duration: d, Fill: animation.FillForwards}
	if !scene.Engine.PlayAnimation(e, name, desc, start) {
		return fmt.Errorf("--play %s: no animation %q", arg, name)
	}
	return nil
}
