// Command keypad-lock runs the four-button password gate: it samples the
// buttons, drives the indicator LED, and publishes lock events to MQTT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sweeney/keypad-lock/internal/config"
	"github.com/sweeney/keypad-lock/internal/console"
	"github.com/sweeney/keypad-lock/internal/gpio"
	"github.com/sweeney/keypad-lock/internal/logic"
	"github.com/sweeney/keypad-lock/internal/mqtt"
	"github.com/sweeney/keypad-lock/internal/status"
	"github.com/sweeney/keypad-lock/internal/web"
)

const clientID = "keypad-lock"

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config.Config) error {
	// Initialize GPIO
	board, err := gpio.NewRealBoard(cfg.GPIO())
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer board.Close()

	// Print state mode
	if cfg.PrintState {
		levels, err := board.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		fmt.Println(levelsString(levels))
		return nil
	}

	// Initialize MQTT
	publisher := mqtt.NewRealPublisher(cfg.Broker, clientID)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      cfg.Tick.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		Broker:      cfg.Broker,
		HTTPAddr:    cfg.HTTPAddr,
		Chip:        cfg.Chip,
		Buttons:     cfg.Buttons,
		LED:         cfg.LED,
		ActiveLow:   cfg.ActiveLow,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	printer := console.New(os.Stdout)
	printer.Banner()

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	log.Printf("started: tick=%v broker=%s heartbeat=%v buttons=%v led=%d config=%q",
		cfg.Tick, cfg.Broker, cfg.Heartbeat, cfg.Buttons, cfg.LED, cfg.File)

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(board, publisher, publisher, printer, tracker, cfg.Heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(board gpio.Board, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, printer *console.Printer, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	machine := logic.NewMachine(now())

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			levels, err := board.Read()
			if err != nil {
				// A failed read is not treated as "all released"; the
				// sampler keeps its previous levels.
				log.Printf("gpio read error: %v", err)
				continue
			}

			out := machine.Tick(logic.Levels(levels), t)

			for _, event := range out.Events {
				log.Printf("event: %s (button=%s fill=%d state=%s)", event.Type, event.Button, event.Fill, event.State)
				if printer != nil {
					printer.Event(event)
				}
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			if out.IndicatorChanged {
				if err := board.SetIndicator(out.Indicator); err != nil {
					log.Printf("indicator write error: %v", err)
				}
			}

			if hbData := machine.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v digits=%d dropped=%d correct=%d incorrect=%d resets=%d",
					hbData.Uptime, hbData.Counts.Digits, hbData.Counts.Dropped,
					hbData.Counts.Correct, hbData.Counts.Incorrect, hbData.Counts.Resets)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					tracker.Update(machine.State(), machine.Indicator(), machine.Fill(), machine.EventCountsSnapshot())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(machine.State(), machine.Indicator(), machine.Fill(), machine.EventCountsSnapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

// levelsString renders button levels for -print-state,
// e.g. "BTN0: released, BTN1: pressed, BTN2: released, BTN3: released".
func levelsString(levels [gpio.NumButtons]bool) string {
	parts := make([]string, len(levels))
	for i, down := range levels {
		state := "released"
		if down {
			state = "pressed"
		}
		parts[i] = fmt.Sprintf("%s: %s", logic.Button(i), state)
	}
	return strings.Join(parts, ", ")
}
