// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the rockcraft-java command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/config"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/extensions"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/manifest"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/plugins"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/version"
	"github.com/alecthomas/kong"
)

// CLI is the command tree parsed by kong.
type CLI struct {
	Debug  bool   `short:"d" help:"Enable debug logging."`
	Config string `type:"path" placeholder:"PATH" help:"TOML file pinning the chisel release sources."`

	Expand     ExpandCmd     `cmd:"" help:"Print the manifest with its extensions applied."`
	Plan       PlanCmd       `cmd:"" help:"Print the plugin plan of a part."`
	Extensions ExtensionsCmd `cmd:"" help:"List registered extensions."`
	Plugins    PluginsCmd    `cmd:"" help:"List registered plugins."`
	Version    VersionCmd    `cmd:"" help:"Print version information."`
}

// ProjectFlags locate the manifest.
type ProjectFlags struct {
	ProjectDir string `type:"path" default:"." help:"Project root containing the manifest."`
	File       string `default:"rockcraft.yaml" help:"Manifest file name, relative to the project root."`
}

// Globals is bound to every command's Run method.
type Globals struct {
	Debug      bool
	ConfigPath string
	Out        io.Writer

	opts []craft.ContextOption
	ctx  *craft.Context
}

// Context returns the craft context rooted at projectDir. The first call wins.
func (g *Globals) Context(projectDir string) *craft.Context {
	if g.ctx != nil {
		return g.ctx
	}
	opts := append([]craft.ContextOption{}, g.opts...)
	if projectDir != "" {
		opts = append(opts, craft.WithProjectRoot(projectDir))
	}
	if g.Debug {
		opts = append(opts, craft.WithDebug(true))
	}
	g.ctx = craft.NewContext(opts...)
	return g.ctx
}

// expandedManifest loads the project manifest and applies its extensions.
func (g *Globals) expandedManifest(flags ProjectFlags) (*craft.Context, *manifest.Manifest, error) {
	ctx := g.Context(flags.ProjectDir)
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return ctx, nil, err
	}
	m, err := manifest.Load(ctx, flags.File)
	if err != nil {
		return ctx, nil, err
	}
	expanded, err := extensions.Apply(ctx, cfg, m)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, expanded, nil
}

// Run parses args, runs the selected command and returns the process exit code.
// Context options apply to the craft context the command runs with.
func Run(args []string, out io.Writer, opts ...craft.ContextOption) int {
	if out == nil {
		out = os.Stdout
	}
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name(version.Name),
		kong.Description("Expands rockcraft Java extensions and plans Java plugin builds."),
		kong.Writers(out, out),
		kong.Exit(func(code int) { exitCode = code }),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help was handled by kong.
		return exitCode
	}
	if err != nil {
		parser.Errorf("%v", err)
		return 1
	}

	g := &Globals{Debug: cli.Debug, ConfigPath: cli.Config, Out: out, opts: opts}
	if err := kctx.Run(g); err != nil {
		report(g.Context(""), err)
		return 1
	}
	g.Context("").Sync()
	return 0
}

func report(ctx *craft.Context, err error) {
	ctx.Logf("Error: %v", err)
	if be, ok := buildererror.As(err); ok {
		ctx.Debugf("Failure status: %s", be.Status)
		if url := be.DocURL(); url != "" {
			ctx.Logf("See %s", url)
		}
	}
	ctx.Sync()
}

// ExpandCmd prints the expanded manifest.
type ExpandCmd struct {
	ProjectFlags `embed:""`
}

// Run executes the expand command.
func (c *ExpandCmd) Run(g *Globals) error {
	_, m, err := g.expandedManifest(c.ProjectFlags)
	if err != nil {
		return err
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	_, err = g.Out.Write(data)
	return err
}

// ExtensionsCmd lists registered extensions.
type ExtensionsCmd struct{}

// Run executes the extensions command.
func (c *ExtensionsCmd) Run(g *Globals) error {
	for _, name := range extensions.Names() {
		fmt.Fprintln(g.Out, name)
	}
	return nil
}

// PluginsCmd lists registered plugins.
type PluginsCmd struct{}

// Run executes the plugins command.
func (c *PluginsCmd) Run(g *Globals) error {
	for _, name := range plugins.Names() {
		fmt.Fprintln(g.Out, name)
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(g *Globals) error {
	v, err := version.String()
	if err != nil {
		return err
	}
	fmt.Fprintln(g.Out, v)
	return nil
}
