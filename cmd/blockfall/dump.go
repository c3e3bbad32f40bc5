package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/bridge"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var (
	flagDumpMode      string
	flagDumpTicks     int
	flagDumpDropEvery int
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Run a scripted game and print the adapter buffers",
	Long: `Run a mode headless for a number of ticks and print the four output
buffers as digit grids, followed by the accessor values.

The script holds soft drop for the whole run and taps hard drop every
--drop-every ticks. Inputs go through the same auto-repeat policy as the
browser host. Without --seed the run uses seed 1 so output is repeatable.

Color indices:
  0 empty  1 ghost  2 transparent  3 I  4 O  5 S  6 Z  7 J  8 L  9 T

Examples:
  blockfall dump
  blockfall dump --mode sprint --ticks 2000 --drop-every 30
  blockfall dump --seed 42 --difficulty hard`,
	Run: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&flagDumpMode, "mode", "marathon", "Mode to run")
	dumpCmd.Flags().IntVar(&flagDumpTicks, "ticks", 600, "Number of ticks to run")
	dumpCmd.Flags().IntVar(&flagDumpDropEvery, "drop-every", 45, "Tap hard drop every N ticks (0 = never)")
	addRulesFlags(dumpCmd)
}

func runDump(_ *cobra.Command, _ []string) {
	rules := mustLoadRules()

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}

	b, err := registry.Open(flagDumpMode, core.NewRandSource(seed), rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	ran := runScript(b, core.NewRepeater(rules.Input.RepeatDelay), flagDumpTicks, flagDumpDropEvery)
	b.Rendering()

	fmt.Printf("mode=%s seed=%d ticks=%d\n\n", flagDumpMode, seed, ran)
	if err := writeDump(os.Stdout, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runScript drives the adapter until ticks run out or the game ends.
// It returns the number of ticks applied.
func runScript(b *bridge.Bridge, rep *core.Repeater, ticks, dropEvery int) int {
	for i := range ticks {
		if b.IsGameOver() {
			return i
		}
		var held bridge.Keys
		held[bridge.KeySoftDrop] = true
		if dropEvery > 0 && (i+1)%dropEvery == 0 {
			held[bridge.KeyHardDrop] = true
		}
		b.TickKeys(rep.Step(held))
	}
	return ticks
}

// writeDump prints the buffers and accessors of a rendered adapter.
func writeDump(w io.Writer, b *bridge.Bridge) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "field:")
	writeGrid(bw, b.Field(), bridge.Cols)
	fmt.Fprintln(bw, "clear:")
	writeGrid(bw, b.Clear(), bridge.Cols)

	next := b.Next()
	for p := range bridge.PreviewSlots {
		fmt.Fprintf(bw, "next[%d]:\n", p)
		writeGrid(bw, next[p*bridge.PreviewCells:(p+1)*bridge.PreviewCells], bridge.PreviewSize)
	}
	fmt.Fprintln(bw, "hold:")
	writeGrid(bw, b.Hold(), bridge.PreviewSize)

	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "score:          %d\n", b.Score())
	fmt.Fprintf(bw, "clear_lines:    %d\n", b.ClearLines())
	fmt.Fprintf(bw, "game_over:      %t\n", b.IsGameOver())
	fmt.Fprintf(bw, "can_use_hold:   %t\n", b.CanUseHold())
	fmt.Fprintf(bw, "interval_ratio: %.4f\n", b.IntervalRatio())

	// bufio keeps the first write error and returns it here
	return bw.Flush()
}

// writeGrid prints buf as rows of width cells. Cells are single digits with
// no separator unless some value needs more than one digit, in which case
// the whole grid is space separated.
func writeGrid(w io.Writer, buf []byte, width int) error {
	sep := slices.ContainsFunc(buf, func(v byte) bool { return v > 9 })

	line := make([]byte, 0, 4*width+1)
	for i, v := range buf {
		if sep && i%width != 0 {
			line = append(line, ' ')
		}
		line = strconv.AppendUint(line, uint64(v), 10)
		if (i+1)%width == 0 {
			line = append(line, '\n')
			if _, err := w.Write(line); err != nil {
				return err
			}
			line = line[:0]
		}
	}
	return nil
}
