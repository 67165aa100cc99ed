package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"

	"github.com/pixelseal/pixelseal/bench/common"
	"github.com/pixelseal/pixelseal/stego"
	"github.com/pixelseal/pixelseal/stego/imaging"
	"github.com/pixelseal/pixelseal/stego/kdf"
)

func main() {
	app := cli.NewApp()
	app.Name = "pixelseal-bench"
	app.Usage = "Benchmark tool for pixelseal key derivation, encoding, and decoding"
	app.Version = stego.Version
	app.Flags = getFlags()
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "op",
			Usage: "Operation to benchmark: derive, encode, decode, all",
			Value: "all",
		},
		cli.IntFlag{
			Name:  "operations, n",
			Usage: "Number of operations to run",
			Value: 100,
		},
		cli.IntFlag{
			Name:  "message-size, ms",
			Usage: "Size of each hidden message in bytes",
			Value: 256,
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "Carrier image width in pixels",
			Value: 640,
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "Carrier image height in pixels",
			Value: 480,
		},
		cli.IntFlag{
			Name:  "kdf-iterations",
			Usage: "PBKDF2 iteration count",
			Value: kdf.DefaultIterations,
		},
		cli.StringFlag{
			Name:  "password",
			Usage: "Password used for every operation",
			Value: "benchmark-password",
		},
		cli.IntFlag{
			Name:  "concurrent, c",
			Usage: "Number of concurrent worker goroutines",
			Value: 1,
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "Output format: text, json",
			Value: "text",
		},
	}
}

func run(c *cli.Context) error {
	op := strings.ToLower(c.String("op"))
	operations := c.Int("operations")
	messageSize := c.Int("message-size")
	width := c.Int("width")
	height := c.Int("height")
	iterations := c.Int("kdf-iterations")
	password := c.String("password")
	concurrent := c.Int("concurrent")
	outputFormat := c.String("output")

	// Validate
	switch op {
	case "derive", "encode", "decode", "all":
	default:
		return fmt.Errorf("unknown op %q: expected derive, encode, decode, or all", op)
	}
	if operations <= 0 {
		return fmt.Errorf("operations must be > 0")
	}
	if messageSize <= 0 {
		return fmt.Errorf("message-size must be > 0")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("width and height must be > 0")
	}
	if iterations <= 0 {
		return fmt.Errorf("kdf-iterations must be > 0")
	}
	if concurrent <= 0 {
		concurrent = 1
	}

	config := stego.NewDefaultConfig()
	config.KDFIterations = iterations
	config.LogSilent = true
	codec := stego.New(config)

	// Build the carrier once (NOT timed) and make sure the requested
	// message fits it.
	carrier := common.CarrierImage(width, height)
	if max := stego.MaxMessageSize(carrier); messageSize > max {
		return fmt.Errorf("message-size %d exceeds the %dx%d carrier's capacity of %d bytes",
			messageSize, width, height, max)
	}
	carrierData, err := imaging.Encode(carrier, imaging.PNG)
	if err != nil {
		return fmt.Errorf("failed to build carrier image: %w", err)
	}

	if op == "derive" || op == "all" {
		if err := benchDerive(password, iterations, operations, concurrent, outputFormat); err != nil {
			return err
		}
	}
	if op == "encode" || op == "all" {
		if err := benchEncode(codec, carrierData, password, messageSize, operations, concurrent, outputFormat); err != nil {
			return err
		}
	}
	if op == "decode" || op == "all" {
		if err := benchDecode(codec, carrierData, password, messageSize, operations, concurrent, outputFormat); err != nil {
			return err
		}
	}
	return nil
}

func benchDerive(password string, iterations, operations, concurrent int, outputFormat string) error {
	salt := []byte("benchmark-salt--")

	fmt.Printf("Deriving %d keys at %d iterations with %d worker(s)...\n",
		operations, iterations, concurrent)

	stats := common.NewStats()
	stats.Start()
	runWorkers(operations, concurrent, func(int) {
		start := time.Now()
		key := kdf.Derive(password, salt, iterations)
		stats.RecordLatency(time.Since(start))
		stats.RecordOperation(len(key))
	})
	stats.Stop()

	common.PrintResults("Key Derivation", stats, outputFormat)
	return nil
}

func benchEncode(codec *stego.Codec, carrierData []byte, password string, messageSize, operations, concurrent int, outputFormat string) error {
	// Pre-generate messages (NOT timed)
	messages := common.PreGenerateMessages(operations, messageSize)

	fmt.Printf("Encoding %d messages of %d bytes into a %s carrier with %d worker(s)...\n",
		operations, messageSize, humanize.Bytes(uint64(len(carrierData))), concurrent)

	stats := common.NewStats()
	stats.Start()
	runWorkers(operations, concurrent, func(i int) {
		start := time.Now()
		encoded, err := codec.Encode(carrierData, messages[i], password)
		if err != nil {
			stats.RecordError()
			return
		}
		stats.RecordLatency(time.Since(start))
		stats.RecordOperation(len(encoded))
	})
	stats.Stop()

	common.PrintResults("Encode", stats, outputFormat)
	return nil
}

func benchDecode(codec *stego.Codec, carrierData []byte, password string, messageSize, operations, concurrent int, outputFormat string) error {
	// Pre-encode the carrier images to decode (NOT timed)
	fmt.Printf("Pre-encoding %d carrier images...\n", operations)
	encoded := make([][]byte, operations)
	for i := range encoded {
		data, err := codec.Encode(carrierData, common.RandomMessage(messageSize), password)
		if err != nil {
			return fmt.Errorf("failed to pre-encode carrier %d: %w", i, err)
		}
		encoded[i] = data
	}

	fmt.Printf("Decoding %d messages with %d worker(s)...\n", operations, concurrent)

	stats := common.NewStats()
	stats.Start()
	runWorkers(operations, concurrent, func(i int) {
		start := time.Now()
		message, err := codec.Decode(encoded[i], password)
		if err != nil {
			stats.RecordError()
			return
		}
		stats.RecordLatency(time.Since(start))
		stats.RecordOperation(len(message))
	})
	stats.Stop()

	common.PrintResults("Decode", stats, outputFormat)
	return nil
}

// runWorkers splits operations across concurrent goroutines, handing the
// remainder to the last worker, and blocks until all of them finish.
func runWorkers(operations, concurrent int, fn func(i int)) {
	var wg sync.WaitGroup

	opsPerWorker := operations / concurrent
	remainder := operations % concurrent

	for w := 0; w < concurrent; w++ {
		start := w * opsPerWorker
		end := start + opsPerWorker
		if w == concurrent-1 {
			end += remainder
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}

	wg.Wait()
}
