// Command lobctl is a CLI test driver for the order book engine. It is an
// external collaborator in the sense of spec.md §1 ("test drivers ...
// console reporting ... CLI flag parsing are external") — nothing in
// internal/engine or internal/book depends on it.
//
// It reads a workload file of one command per line:
//
//	BUY <price> <quantity>
//	SELL <price> <quantity>
//	CANCEL <order-id>
//
// feeds each command through a sequencer.Sequencer, and prints the
// resulting trades and a depth snapshot.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lobengine/internal/book"
	"lobengine/internal/engine"
	"lobengine/internal/sequencer"
)

func main() {
	workloadPath := flag.String("workload", "", "path to a workload file (required)")
	depthLevels := flag.Int("depth", 5, "number of price levels to print per side")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *workloadPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -workload is required.")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*workloadPath, *depthLevels); err != nil {
		log.Fatal().Err(err).Msg("lobctl failed")
	}
}

func run(workloadPath string, depthLevels int) error {
	f, err := os.Open(workloadPath)
	if err != nil {
		return fmt.Errorf("open workload: %w", err)
	}
	defer f.Close()

	ob := engine.New()
	seq := sequencer.New(ob)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	seq.Start(ctx)
	defer seq.Stop()

	var lastTapeSeq uint64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := execute(ctx, seq, line); err != nil {
			log.Error().Int("line", lineNo).Str("text", line).Err(err).Msg("command failed")
			continue
		}

		for _, t := range ob.Tape(lastTapeSeq) {
			fmt.Println(t.String())
			lastTapeSeq = t.Sequence
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read workload: %w", err)
	}

	printDepth(ob, depthLevels)
	printMarketData(ob)
	return nil
}

func execute(ctx context.Context, seq *sequencer.Sequencer, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToUpper(fields[0]) {
	case "BUY", "SELL":
		if len(fields) != 3 {
			return fmt.Errorf("expected '%s <price> <quantity>'", fields[0])
		}
		price, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", fields[1], err)
		}
		qty, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", fields[2], err)
		}
		side := book.Buy
		if strings.ToUpper(fields[0]) == "SELL" {
			side = book.Sell
		}
		id, err := seq.AddOrder(ctx, side, book.Price(price), book.Quantity(qty))
		if err != nil {
			return err
		}
		log.Info().Uint64("orderID", uint64(id)).Msg("order accepted")
		return nil
	case "CANCEL":
		if len(fields) != 2 {
			return fmt.Errorf("expected 'CANCEL <order-id>'")
		}
		id, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q: %w", fields[1], err)
		}
		ok, err := seq.CancelOrder(ctx, book.OrderID(id))
		if err != nil {
			return err
		}
		log.Info().Uint64("orderID", id).Bool("found", ok).Msg("cancel processed")
		return nil
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func printDepth(ob *engine.OrderBook, levels int) {
	bids, asks := ob.DepthSnapshot(levels)
	fmt.Println("--- depth ---")
	fmt.Println("bids:")
	for _, l := range bids {
		fmt.Printf("  %v x %d (%d orders)\n", l.Price, l.Volume, l.Orders)
	}
	fmt.Println("asks:")
	for _, l := range asks {
		fmt.Printf("  %v x %d (%d orders)\n", l.Price, l.Volume, l.Orders)
	}
}

func printMarketData(ob *engine.OrderBook) {
	bid, bidOk := ob.BestBid()
	ask, askOk := ob.BestAsk()
	spread, spreadOk := ob.Spread()
	mid, midOk := ob.Mid()

	fmt.Println("--- market data ---")
	fmt.Printf("best bid: %s\n", formatPrice(bid, bidOk))
	fmt.Printf("best ask: %s\n", formatPrice(ask, askOk))
	fmt.Printf("spread:   %s\n", formatPrice(spread, spreadOk))
	fmt.Printf("mid:      %s\n", formatPrice(mid, midOk))
}

func formatPrice(p book.Price, ok bool) string {
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%v", p)
}
