// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewSchemaFlag constructs the --schema flag of query commands.
func NewSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the attribute keys of the resource",
		HideDefault: true,
	}
}

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewControllerFlags constructs the flags that say which controller to talk
// to and how. When ns and a config file path are given, each flag also
// falls back to the <ns>.<flag> and <flag> keys of that file.
func NewControllerFlags(params ...string) []cli.Flag {
	url := &cli.StringFlag{
		Name:    "url",
		Aliases: []string{"u"},
		Usage:   "network controller base url. Overrides hnv.url",
		Sources: cli.NewValueSourceChain(cli.EnvVar("HNVCTL_URL")),
	}
	username := &cli.StringFlag{
		Name:    "username",
		Usage:   "user for basic auth. Overrides hnv.username",
		Sources: cli.NewValueSourceChain(cli.EnvVar("HNVCTL_USERNAME")),
	}
	password := &cli.StringFlag{
		Name:    "password",
		Usage:   "password for basic auth. Prompted for when missing",
		Sources: cli.NewValueSourceChain(cli.EnvVar("HNVCTL_PASSWORD")),
	}
	caBundle := &cli.StringFlag{
		Name:      "ca-bundle",
		Usage:     "PEM file of CAs to trust. Overrides hnv.https_ca_bundle",
		Sources:   cli.NewValueSourceChain(cli.EnvVar("HNVCTL_CA_BUNDLE")),
		TakesFile: true,
	}
	insecure := &cli.BoolFlag{
		Name:    "insecure",
		Aliases: []string{"k"},
		Usage:   "skip TLS certificate verification",
		Sources: cli.NewValueSourceChain(cli.EnvVar("HNVCTL_INSECURE")),
	}

	if len(params) == 2 {
		url = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], url)
		username = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], username)
		caBundle = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], caBundle)
		insecure.Sources.Chain = append(insecure.Sources.Chain,
			configSources(params[0], params[1], insecure.Name)...)
	}

	return []cli.Flag{url, username, password, caBundle, insecure}
}

// NewParentFlags constructs the flags addressing the ancestors of child and
// grandchild resources.
func NewParentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "parent",
			Aliases: []string{"p"},
			Usage:   "parent resource id",
		},
		&cli.StringFlag{
			Name:    "grandparent",
			Aliases: []string{"g"},
			Usage:   "grandparent resource id",
		},
	}
}

// NewWaitFlags constructs the flags controlling whether mutations block until
// the controller settles.
func NewWaitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-wait",
			Usage: "return as soon as the controller accepts the request",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "give up waiting after this long. 0 waits forever",
			Value: 5 * time.Minute,
			Validator: func(value time.Duration) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, path, flag.Name)...)
	return flag
}

func configSources(ns, path, name string) []cli.ValueSource {
	return []cli.ValueSource{
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	}
}
