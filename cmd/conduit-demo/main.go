// Command conduit-demo wires config, logging, and metrics around a
// small producer/consumer pipeline built from the conduit packages:
// load config, build logger, build metrics, start work, wait for a
// shutdown signal, then cancel the workers and close the channels.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/example/conduit/channel"
	"github.com/example/conduit/combinators"
	"github.com/example/conduit/hub"
	"github.com/example/conduit/internal/config"
	"github.com/example/conduit/internal/telemetry"
)

func main() {
	cfg := config.Default()
	if path := os.Getenv("CONDUIT_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}

	logger := telemetry.NewLogger(cfg.Logging)
	metrics := telemetry.New(prometheus.DefaultRegisterer)

	logger.Info().Msg("starting conduit demo")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := hub.New[string](
		hub.WithLogger[string](logger),
		hub.WithSubscriberBacklog[string](cfg.Channel.SubscriberBacklog),
	)

	work := channel.NewBuffered[int](cfg.Channel.DefaultBufferSize)
	results := combinators.Map(work, func(v int) int { return v * v })

	go produce(ctx, work, logger, metrics)
	go consume(ctx, results, events, metrics, logger, cfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down conduit demo")
	cancel()
	work.Close()
	events.Close()
}

// produce feeds incrementing integers into work until ctx is cancelled.
func produce(ctx context.Context, work *channel.Channel[int], logger zerolog.Logger, metrics *telemetry.Metrics) {
	logger.Info().Msg("producer starting")
	i := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info().Int("produced", i).Msg("producer stopping")
			return
		default:
		}
		res := work.SendTimeout(i, 100)
		switch {
		case res.Ok:
			metrics.SendsTotal.WithLabelValues("ok").Inc()
		case res.Closed:
			metrics.SendsTotal.WithLabelValues("closed").Inc()
			logger.Info().Int("produced", i).Msg("work channel closed, producer stopping")
			return
		case res.Timeout:
			metrics.SendsTotal.WithLabelValues("timeout").Inc()
			continue
		}
		metrics.BufferedLength.WithLabelValues("work").Set(float64(work.Len()))
		i++
	}
}

// consume drains squared values from results, publishing a summary
// event to the hub every value, using select to also honor shutdown.
func consume(
	ctx context.Context,
	results *channel.Channel[int],
	events *hub.Hub[string],
	metrics *telemetry.Metrics,
	logger zerolog.Logger,
	cfg *config.Config,
) {
	done := channel.New[struct{}]()
	go func() {
		<-ctx.Done()
		done.Close()
	}()

	for {
		start := time.Now()
		idx, ok := channel.SelectWait([]channel.Case{
			channel.RecvCase(results),
			channel.RecvCase(done),
		}, cfg.Channel.SelectWaitTimeout)
		metrics.ObserveSelectWait(start)

		if !ok {
			continue
		}
		if idx == 1 {
			return
		}

		r := results.TryRecv()
		if !r.Ok {
			metrics.RecvsTotal.WithLabelValues(recvOutcome(r)).Inc()
			continue
		}
		metrics.RecvsTotal.WithLabelValues("ok").Inc()
		events.Publish(logMessage(r.Value))
		logger.Debug().Int("value", r.Value).Msg("consumed result")
	}
}

func recvOutcome(r channel.TryResult[int]) string {
	switch {
	case r.Closed:
		return "closed"
	default:
		return "empty"
	}
}

func logMessage(v int) string {
	return "result=" + strconv.Itoa(v)
}
