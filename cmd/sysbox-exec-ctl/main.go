//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/nestybox/sysbox-exec/config"
	"github.com/nestybox/sysbox-exec/domain"
	"github.com/nestybox/sysbox-exec/header"
	"github.com/nestybox/sysbox-exec/linkerpolicy"
	"github.com/nestybox/sysbox-exec/sysio"
)

const usage = `sysbox-exec-ctl exec-interception diagnostics

sysbox-exec-ctl inspects the configuration and decisions that the
sysbox-exec preload engine would make for a given executable, without
actually exec()ing anything. It's meant for troubleshooting rootfs and
linker-exec policy issues from a shell.
`

var version string // set at build time

func runProfiler(ctx *cli.Context) (interface{ Stop() }, error) {
	var prof interface{ Stop() }

	if ctx.GlobalBool("cpu-profile") && ctx.GlobalBool("mem-profile") {
		return nil, fmt.Errorf("cpu-profile and mem-profile are mutually exclusive")
	}

	if ctx.GlobalBool("cpu-profile") {
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	if ctx.GlobalBool("mem-profile") {
		prof = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}

	return prof, nil
}

func main() {
	app := cli.NewApp()
	app.Name = "sysbox-exec-ctl"
	app.Usage = usage
	app.Version = version

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "cpu-profile",
			Usage:  "enable cpu-profiling data collection",
			Hidden: true,
		},
		cli.BoolFlag{
			Name:   "mem-profile",
			Usage:  "enable memory-profiling data collection",
			Hidden: true,
		},
	}

	var prof interface{ Stop() }

	app.Before = func(ctx *cli.Context) error {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		var err error
		prof, err = runProfiler(ctx)
		return err
	}

	app.After = func(ctx *cli.Context) error {
		if prof != nil {
			prof.Stop()
		}
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:  "rootfs",
			Usage: "print the active rootfs directory",
			Action: func(c *cli.Context) error {
				fmt.Println(config.Rootfs())
				return nil
			},
		},
		{
			Name:      "inspect",
			Usage:     "classify a candidate executable's header",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return fmt.Errorf("expected exactly one file argument")
				}
				return inspect(c.Args().First())
			},
		},
		{
			Name:      "policy",
			Usage:     "report whether an executable would be linker-wrapped",
			ArgsUsage: "<path>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return fmt.Errorf("expected exactly one path argument")
				}
				return printPolicy(c.Args().First())
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func inspect(path string) error {
	io := sysio.NewOsService()

	buf := make([]byte, header.MaxHeaderBytes)
	n, err := io.ReadHeader(path, buf)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	insp := header.New()
	h, err := insp.Inspect(config.Rootfs(), buf[:n])
	if err != nil {
		return fmt.Errorf("failed to classify %s: %w", path, err)
	}

	switch h.Kind {
	case domain.KindELF:
		native := "native"
		if h.IsNonNativeELF {
			native = "non-native"
		}
		fmt.Printf("%s: ELF, %s\n", path, native)
	case domain.KindShebang:
		fmt.Printf("%s: shebang, interpreter=%s (orig=%s)\n", path, h.Interpreter, h.OrigInterpreter)
	default:
		fmt.Printf("%s: unknown\n", path)
	}

	return nil
}

func printPolicy(path string) error {
	ev := linkerpolicy.New(sysio.NewOsService())

	wrap, err := ev.ShouldLinkerExec(path, config.Rootfs())
	if err != nil {
		return fmt.Errorf("failed to evaluate policy for %s: %w", path, err)
	}

	fmt.Printf("%s: linker-exec=%v\n", path, wrap)
	return nil
}
