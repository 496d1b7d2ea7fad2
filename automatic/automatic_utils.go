package automatic

// Data collection for automatic games: many computer-vs-computer games in
// parallel, one isolated pair of players per worker.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/connect6/config"
	"github.com/domino14/connect6/turnplayer"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// playing guards CompVsComp; IsPlaying only counts busy workers.
var playing atomic.Bool

// CompVsComp plays numGames between strategies p1 and p2 on threads
// workers. Turn logs go to logfile as CSV when it is non-nil. Cancelling ctx
// stops queueing games; the games already played are still reported.
func CompVsComp(ctx context.Context, cfg *config.Config, p1, p2 string,
	numGames, threads int, logfile io.Writer) (*Report, error) {

	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)
	threads = max(1, min(threads, numGames))
	name1, name2 := p1+"-1", p2+"-2"

	// build one runner per worker up front so a bad strategy fails fast.
	runners := make([]*GameRunner, threads)
	var logChan chan string
	if logfile != nil {
		logChan = make(chan string, 100)
	}
	for i := range runners {
		a, err := turnplayer.New(cfg, p1, name1)
		if err != nil {
			return nil, err
		}
		b, err := turnplayer.New(cfg, p2, name2)
		if err != nil {
			return nil, err
		}
		runners[i] = NewGameRunner(logChan, a, b)
	}
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-autoplay")

	CVCCounter.Set(0)
	jobs := make(chan int, 100)
	results := make(chan GameResult, 100)
	report := NewReport(name1, name2)

	writer := errgroup.Group{}
	if logChan != nil {
		writer.Go(func() error {
			// keep draining after a write error so the workers never block.
			_, werr := io.WriteString(logfile, "gameID,turn,player,color,move,millis\n")
			for msg := range logChan {
				if werr == nil {
					_, werr = io.WriteString(logfile, msg)
				}
			}
			return werr
		})
	}

	collector := errgroup.Group{}
	collector.Go(func() error {
		for res := range results {
			report.Add(res)
		}
		return nil
	})

	g := errgroup.Group{}
	for _, r := range runners {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for id := range jobs {
				results <- r.PlayGame(id)
				CVCCounter.Add(1)
			}
			return nil
		})
	}

gameLoop:
	for i := 0; i < numGames; i++ {
		select {
		case <-ctx.Done():
			log.Info().Int("queued", i).Msg("got-stop-signal")
			break gameLoop
		case jobs <- i:
		}
	}
	close(jobs)
	err := g.Wait()
	close(results)
	if logChan != nil {
		close(logChan)
	}
	if cerr := collector.Wait(); err == nil {
		err = cerr
	}
	if werr := writer.Wait(); err == nil {
		err = werr
	}
	log.Info().Int("games", report.Games).Msg("all-games-finished")
	return report, err
}
