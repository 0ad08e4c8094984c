package main

import (
	"bytes"
	"os"

	"github.com/jxskiss/errors"
	"github.com/jxskiss/gopkg/exp/zlog"
	"github.com/urfave/cli/v2"

	"github.com/javaarchive/nerine-tweaks/caddy"
	"github.com/javaarchive/nerine-tweaks/caddyfile"
	"github.com/javaarchive/nerine-tweaks/envfile"
	"github.com/javaarchive/nerine-tweaks/settings"
)

func main() {
	zlog.SetupGlobals(&zlog.Config{Development: true})
	defer zlog.Sync()

	app := cli.NewApp()
	app.Name = "deploygen"
	app.HelpName = "deploygen"
	app.Usage = "Generate nerine deployment configuration artifacts"

	app.Commands = []*cli.Command{
		caddyConfigCommand(),
		caddyfileCommand(),
		envCommand(),
	}

	err := app.Run(os.Args)
	if err != nil {
		zlog.Fatal(err.Error())
	}
}

func caddyConfigCommand() *cli.Command {
	return &cli.Command{
		Name:      "caddy-config",
		Usage:     "Generate the Caddy JSON configuration",
		ArgsUsage: "<platform-domain> <challs-domain> <keys-dir>",
		Action:    caddyConfigAction,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yaml", Usage: "emit YAML instead of JSON"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write output to file instead of stdout"},
		},
	}
}

func caddyConfigAction(ctx *cli.Context) error {
	if ctx.NArg() != 3 {
		return errors.New("usage: deploygen caddy-config <platform-domain> <challs-domain> <keys-dir>")
	}
	platformDomain := ctx.Args().Get(0)
	challsDomain := ctx.Args().Get(1)
	keysDir := ctx.Args().Get(2)

	info, err := os.Stat(keysDir)
	if err != nil || !info.IsDir() {
		return errors.Errorf("keys directory %s does not exist", keysDir)
	}

	st, err := settings.Load()
	if err != nil {
		return err
	}

	cfg, err := caddy.Assemble(caddy.Params{
		PlatformDomain: platformDomain,
		ChallsDomain:   challsDomain,
		KeysDir:        keysDir,
		Settings:       st,
	})
	if err != nil {
		return err
	}

	var data []byte
	if ctx.Bool("yaml") {
		data, err = cfg.YAML()
	} else {
		data, err = cfg.JSON()
	}
	if err != nil {
		return err
	}
	return emit(ctx.String("output"), data)
}

func caddyfileCommand() *cli.Command {
	return &cli.Command{
		Name:      "caddyfile",
		Usage:     "Generate the simplified Caddyfile",
		ArgsUsage: "<platform-domain>",
		Action:    caddyfileAction,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write output to file instead of stdout"},
		},
	}
}

func caddyfileAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("usage: deploygen caddyfile <platform-domain>")
	}
	st, err := settings.Load()
	if err != nil {
		return err
	}
	data, err := caddyfile.Generate(ctx.Args().Get(0), bool(st.EnableHTTPS))
	if err != nil {
		return err
	}
	return emit(ctx.String("output"), data)
}

func envCommand() *cli.Command {
	return &cli.Command{
		Name:      "env",
		Usage:     "Regenerate the env file with fresh secrets",
		ArgsUsage: "[template-file]",
		Action:    envAction,
	}
}

func envAction(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return errors.New("usage: deploygen env [template-file]")
	}
	templateFile := ".env.example"
	if ctx.NArg() == 1 {
		templateFile = ctx.Args().Get(0)
	}

	st, err := settings.Load()
	if err != nil {
		return err
	}
	secrets, err := envfile.NewSecrets()
	if err != nil {
		return err
	}

	f, err := os.Open(templateFile)
	if err != nil {
		return errors.WithMessagef(err, "failed open env template %s", templateFile)
	}
	defer f.Close()

	return envfile.Generate(os.Stdout, f, secrets, st.PlatformDomain, bool(st.EnableHTTPS))
}

func emit(outFile string, data []byte) error {
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	if outFile != "" {
		err := os.WriteFile(outFile, data, 0644)
		return errors.WithMessagef(err, "failed write output file %s", outFile)
	}
	_, err := os.Stdout.Write(data)
	return errors.AddStack(err)
}
