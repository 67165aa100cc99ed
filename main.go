package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/pixelseal/pixelseal/stego"
	"github.com/pixelseal/pixelseal/stego/imaging"
)

func main() {
	app := cli.NewApp()
	app.Name = "pixelseal"
	app.Usage = "Hide encrypted messages in the pixels of lossless images"
	app.Version = stego.Version
	app.Flags = getFlags()
	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "encrypt a message and hide it inside an image",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				passwordFlag(),
				cli.StringFlag{
					Name:  "message, m",
					Usage: "hide `MESSAGE` (reads stdin when no message is given)",
				},
				cli.StringFlag{
					Name:  "message-file, f",
					Usage: "hide the contents of `FILE`",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "write the sealed image to `FILE`",
				},
				cli.StringFlag{
					Name:  "format",
					Usage: "sealed image format [png|bmp]",
				},
			},
			Action: encodeAction,
		},
		{
			Name:      "decode",
			Usage:     "recover a hidden message from an image",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				passwordFlag(),
				cli.StringFlag{
					Name:  "output, o",
					Usage: "write the message to `FILE` instead of stdout",
				},
			},
			Action: decodeAction,
		},
		{
			Name:      "capacity",
			Usage:     "report the largest message an image can hide",
			ArgsUsage: "IMAGE",
			Action:    capacityAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load configuration from `FILE`",
		},
		cli.StringFlag{
			Name:  "level, l",
			Usage: "logging level [debug|info|warn|error]",
		},
	}
}

func passwordFlag() cli.Flag {
	return cli.StringFlag{
		Name:   "password, p",
		Usage:  "password protecting the hidden message (prompts when unset)",
		EnvVar: "PIXELSEAL_PASSWORD",
	}
}

func encodeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("encode requires exactly one IMAGE argument")
	}
	path := c.Args().First()

	config, err := newConfig(c)
	if err != nil {
		return err
	}
	if name := c.String("format"); name != "" {
		format, err := imaging.ParseFormat(name)
		if err != nil {
			return err
		}
		if !format.Lossless() {
			return imaging.ErrLossyFormat
		}
		config.OutputFormat = format
	}

	if c.String("message") == "" && c.String("message-file") == "" &&
		term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("no message given: use --message, --message-file, or pipe data on stdin")
	}
	message, err := resolveMessage(c.String("message"), c.String("message-file"), os.Stdin)
	if err != nil {
		return err
	}
	password, err := resolvePassword(c.String("password"), true)
	if err != nil {
		return err
	}

	imageData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	encoded, err := stego.New(config).Encode(imageData, message, password)
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = defaultOutputPath(path, config.OutputFormat)
	}
	if err := atomic.WriteFile(output, bytes.NewReader(encoded)); err != nil {
		return errors.Wrap(err, "failed to write sealed image")
	}
	fmt.Printf("Sealed %s message into %s (%s)\n",
		humanize.Bytes(uint64(len(message))), output, humanize.Bytes(uint64(len(encoded))))
	return nil
}

func decodeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("decode requires exactly one IMAGE argument")
	}
	path := c.Args().First()

	config, err := newConfig(c)
	if err != nil {
		return err
	}
	password, err := resolvePassword(c.String("password"), false)
	if err != nil {
		return err
	}

	imageData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	message, err := stego.New(config).Decode(imageData, password)
	if err != nil {
		return err
	}

	if output := c.String("output"); output != "" {
		if err := atomic.WriteFile(output, strings.NewReader(message)); err != nil {
			return errors.Wrap(err, "failed to write message")
		}
		fmt.Printf("Recovered %s message to %s\n",
			humanize.Bytes(uint64(len(message))), output)
		return nil
	}
	fmt.Println(message)
	return nil
}

func capacityAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("capacity requires exactly one IMAGE argument")
	}
	path := c.Args().First()

	config, err := newConfig(c)
	if err != nil {
		return err
	}
	imageData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	max, err := stego.New(config).MaxMessageSize(imageData)
	if err != nil {
		return err
	}
	fmt.Printf("%s can hide a message of up to %s bytes\n", path, humanize.Comma(int64(max)))
	return nil
}

// newConfig loads the configuration file named by the global --config flag
// and applies the global --level override on top of it.
func newConfig(c *cli.Context) (*stego.Config, error) {
	config, err := stego.NewConfig(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	if level := c.GlobalString("level"); level != "" {
		logLevel, err := stego.GetLogLevel(level)
		if err != nil {
			return nil, err
		}
		config.LogLevel = logLevel
	}
	return config, nil
}

// resolveMessage picks the message to hide: the --message flag wins, then
// --message-file, and finally whatever stdin carries.
func resolveMessage(message, file string, stdin io.Reader) (string, error) {
	if message != "" {
		return message, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrap(err, "failed to read message file")
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "failed to read message from stdin")
	}
	return string(data), nil
}

// resolvePassword returns the given password or, when it is empty, prompts
// for one on the controlling terminal. Encoding prompts twice so a typo
// cannot seal a message behind an unknown password.
func resolvePassword(password string, confirm bool) (string, error) {
	if password != "" {
		return password, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no password given: use --password or PIXELSEAL_PASSWORD")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if !confirm {
		return string(first), nil
	}
	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if !bytes.Equal(first, second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

// defaultOutputPath derives the sealed image path from the carrier path,
// e.g. photo.png becomes photo.sealed.png.
func defaultOutputPath(input string, format imaging.Format) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".sealed" + format.Extension()
}
