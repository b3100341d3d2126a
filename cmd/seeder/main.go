package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/vietnguyen2358/findandseek"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/ingest"
)

var descriptions = []string{
	"teenager in a red hoodie and black jeans walking quickly",
	"elderly man with a cane wearing a gray overcoat",
	"woman in a yellow raincoat carrying a clear umbrella",
	"man in a navy business suit with a brown leather briefcase",
	"young woman in a green parka waiting near the turnstiles",
	"tall man in a black leather jacket pacing by the entrance",
	"child in a blue puffer coat holding an adult's hand",
	"woman with a large red backpack standing by the ticket machines",
	"man in a white t-shirt and cargo shorts jogging",
	"cyclist in a high visibility vest pushing a road bike",
	"woman in a floral dress with a wide brimmed sun hat",
	"man in a denim jacket with a skateboard under his arm",
	"teenager in a school uniform dragging a rolling backpack",
	"construction worker in an orange vest and white hard hat",
	"woman in a long black coat talking on her phone",
	"man in a plaid flannel shirt carrying grocery bags",
	"runner in a purple windbreaker stretching near the fountain",
	"man in a beige trench coat reading a newspaper on a bench",
	"woman in blue hospital scrubs walking toward the parking lot",
	"teenager with dyed blue hair in an oversized band t-shirt",
	"man in a green military style jacket with a duffel bag",
	"woman pushing a stroller wearing a light pink cardigan",
	"man in a gray hoodie with the hood up, hands in pockets",
	"older woman in a red wool coat feeding pigeons",
	"delivery driver in a brown uniform carrying stacked boxes",
	"man in a tan suit jacket checking his watch repeatedly",
	"young man in a basketball jersey dribbling a ball",
	"woman in a striped blouse and white sneakers window shopping",
	"man with a gray beard in a fisherman's sweater",
	"teenager on a scooter wearing a backwards baseball cap",
	"woman in athletic leggings and a neon running top",
	"man in a wheelchair wearing a dark blue windbreaker",
	"tourist in a Hawaiian shirt photographing the clock tower",
	"woman in a hijab and long navy dress carrying a tote bag",
	"man in a chef's jacket smoking near the service entrance",
	"security guard in a black uniform making rounds",
	"busker in a patched corduroy jacket playing guitar",
	"woman in a camel coat hailing a taxi at the curb",
	"man in paint-splattered overalls loading a van",
	"jogger in a black tracksuit with reflective stripes",
}

var locations = []string{
	"Central Station North Entrance",
	"Market Street Plaza",
	"Riverside Park Gate",
	"Harbor Ferry Terminal",
	"5th Avenue Bus Stop",
}

var seedFileName = flag.String("src", "", "file of seed descriptions")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// frameFor builds a single-person frame for a seed description. Timestamps
// walk backwards from now so time range searches have something to find, and
// cameras rotate through the fixed location list.
func frameFor(index int, description string) *ingest.Frame {
	x := float32(10+(index*7)%60) / 100
	y := float32(15+(index*11)%50) / 100

	return &ingest.Frame{
		CameraLocation: locations[index%len(locations)],
		CameraType:     "fixed",
		Analysis: &core.FrameAnalysis{
			Detections: []core.Detection{{
				Timestamp:   time.Now().UTC().Add(-time.Duration(index) * 10 * time.Minute),
				BBox:        core.BBox{X: x, Y: y, W: 0.15, H: 0.35},
				Confidence:  0.85,
				Description: description,
				Details:     core.FallbackDetails(),
			}},
			Summary: "Detected 1 people in the scene",
		},
	}
}

// ingestAll reads descriptions from a source iterator and ingests one frame
// per description.
func ingestAll(ctx context.Context, pipeline *ingest.Pipeline, source iter.Seq[string]) error {
	index := 0
	for line := range source {
		if line == "" {
			continue
		}
		if err := pipeline.Ingest(ctx, frameFor(index, line)); err != nil {
			return err
		}
		index++
	}
	slog.Info("seeding complete", "detections", index)
	return nil
}

func main() {
	db, err := findandseek.NewDatabase("./detections_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ingester, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(descriptions)
	}

	if err := ingestAll(ctx, ingester, source); err != nil {
		panic(err)
	}
}
