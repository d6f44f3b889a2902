package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/pprof"
	"os"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/spatial/collision"
	"github.com/aukilabs/spatial/featureflag"
	spatialhttp "github.com/aukilabs/spatial/http"
	"github.com/aukilabs/spatial/models"
	"github.com/aukilabs/spatial/smoketest"
	"github.com/aukilabs/spatial/systems"
	spatialwebsocket "github.com/aukilabs/spatial/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

var (
	// The server version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "spatial_info",
		Help:        "Spatial server information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	Addr              string        `cli:""        env:"SPATIAL_ADDR"                help:"Listening address for client connections."`
	AdminAddr         string        `cli:""        env:"SPATIAL_ADMIN_ADDR"          help:"Admin listening address."`
	LogLevel          string        `cli:""        env:"SPATIAL_LOG_LEVEL"           help:"Log level (debug|info|warning|error)."`
	LogIndent         bool          `cli:""        env:"SPATIAL_LOG_INDENT"          help:"Indent logs."`
	FrameDuration     time.Duration `cli:",hidden" env:"SPATIAL_FRAME_DURATION"      help:"The duration of a world frame."`
	ClientIdleTimeout time.Duration `cli:",hidden" env:"SPATIAL_CLIENT_IDLE_TIMEOUT" help:"Time until an idle feed client will be disconnected."`
	ShutdownTimeout   time.Duration `cli:",hidden" env:"SPATIAL_SHUTDOWN_TIMEOUT"    help:"Time given to the servers to drain their connections."`
	World             worldConfig   `cli:""        env:"-"                           help:"World configuration."`
	Seed              seedConfig    `cli:""        env:"-"                           help:"Seed configuration."`
	FeatureFlags      []string      `cli:",hidden" env:"SPATIAL_FEATURE_FLAGS"       help:"Comma separated feature flags."`
	Version           bool          `cli:""        env:"-"                           help:"Show version."`
	Help              bool          `cli:""        env:"-"                           help:"Show help."`
}

type worldConfig struct {
	Name     string  `cli:""        env:"SPATIAL_WORLD_NAME"     help:"The world name."`
	Left     float64 `cli:""        env:"SPATIAL_WORLD_LEFT"     help:"The smallest x of the world."`
	Top      float64 `cli:""        env:"SPATIAL_WORLD_TOP"      help:"The greatest y of the world."`
	Right    float64 `cli:""        env:"SPATIAL_WORLD_RIGHT"    help:"The greatest x of the world."`
	Bottom   float64 `cli:""        env:"SPATIAL_WORLD_BOTTOM"   help:"The smallest y of the world."`
	Capacity int     `cli:",hidden" env:"SPATIAL_WORLD_CAPACITY" help:"The number of entities an index leaf holds before subdividing."`
}

type seedConfig struct {
	File     string  `cli:"" env:"SPATIAL_SEED_FILE"      help:"Path or http(s) URL of a JSON list of entities to add at startup."`
	Count    int     `cli:"" env:"SPATIAL_SEED_COUNT"     help:"The number of random entities to add at startup."`
	MaxSpeed float64 `cli:"" env:"SPATIAL_SEED_MAX_SPEED" help:"The maximum speed of random entities, in world units per second."`
}

func main() {
	conf := config{
		Addr:              ":4000",
		AdminAddr:         ":18190",
		LogLevel:          logs.InfoLevel.String(),
		FrameDuration:     time.Millisecond * 50,
		ClientIdleTimeout: time.Minute * 5,
		ShutdownTimeout:   time.Second * 10,
		World: worldConfig{
			Name:     "default",
			Left:     -1000,
			Top:      1000,
			Right:    1000,
			Bottom:   -1000,
			Capacity: 16,
		},
		Seed: seedConfig{
			MaxSpeed: 5,
		},
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts the spatial server.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	flags := featureflag.New(conf.FeatureFlags)
	if unknown := flags.Unknown(); len(unknown) != 0 {
		logs.WithTag("feature_flags", unknown).Warn("unknown feature flags")
	}

	world := models.NewWorld(conf.World.Name, worldVolume(conf.World), conf.World.Capacity, conf.FrameDuration)
	defer world.Close()

	transport := metrics.HTTPTransport(http.DefaultTransport)
	entities, err := seedEntities(ctx, conf, &http.Client{Transport: transport})
	if err != nil {
		logs.Fatal(errors.New("seeding the world failed").Wrap(err))
	}

	var engine ecs.World
	movement := &systems.MovementSystem{World: world}
	flags.IfNotSet(featureflag.FlagDisableMovement, func() {
		engine.AddSystem(movement)
	})

	for _, e := range entities {
		if err := world.AddEntity(e); err != nil {
			logs.Warn(errors.New("adding seed entity failed").Wrap(err))
			continue
		}

		basic := ecs.NewBasic()
		movement.Add(&basic, e)
	}

	dt := float32(conf.FrameDuration.Seconds())
	cancelFrames := world.HandleFrame(func(uint64) {
		engine.Update(dt)
	})
	defer cancelFrames()
	go world.StartDispatchFrames()

	exact := flags.IsSet(featureflag.FlagExactRadiusQuery)

	var service http.ServeMux
	service.Handle("/health", spatialhttp.HandleWithCORS(http.HandlerFunc(spatialhttp.HandleHealthCheck)))
	service.Handle("/version", spatialhttp.HandleWithCORS(spatialhttp.HandleVersion(version)))
	service.Handle("/entities", spatialhttp.HandleWithCORS(spatialhttp.HandleEntities(world)))
	service.Handle("/entities/nearby", spatialhttp.HandleWithCORS(spatialhttp.HandleNearby(world, exact)))
	service.Handle("/entities/box", spatialhttp.HandleWithCORS(spatialhttp.HandleInBox(world, exact)))
	service.Handle("/debug/index", spatialhttp.HandleWithCORS(spatialhttp.HandleDebug(world)))

	readinessCheck := func() bool {
		return ctx.Err() == nil
	}
	service.Handle("/ready", spatialhttp.HandleWithCORS(spatialhttp.HandleReadyCheck(readinessCheck)))

	flags.IfNotSet(featureflag.FlagDisableWebsocketFeed, func() {
		service.Handle("/feed", websocket.Server{
			Handler: func(conn *websocket.Conn) {
				defer conn.Close()

				spatialwebsocket.Handle(ctx, conn, world, spatialwebsocket.Options{
					IdleTimeout:  conf.ClientIdleTimeout,
					DefaultExact: exact,
				})
			},
		})
	})

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", spatialhttp.HandleHealthCheck)
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	admin.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
	admin.Handle("/debug/pprof/block", pprof.Handler("block"))
	admin.HandleFunc("/ready", spatialhttp.HandleReadyCheck(readinessCheck))
	flags.IfNotSet(featureflag.FlagDisableWebsocketFeed, func() {
		admin.HandleFunc("/smoketest", smoketest.HandleSmokeTest(smoketest.Options{
			Endpoint: feedEndpoint(conf.Addr),
		}))
	})

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("world", world.Name).
		WithTag("world_uuid", world.UUID).
		WithTag("entities", world.EntityCount()).
		Info("starting spatial server")

	err = spatialhttp.ListenAndServe(ctx, conf.ShutdownTimeout,
		&http.Server{Addr: conf.Addr, Handler: metrics.HTTPHandler(&service,
			spatialhttp.MetricsPathFormatter)},
		&http.Server{Addr: conf.AdminAddr, Handler: &admin},
	)
	if err != nil {
		logs.Error(err)
	}
}

func worldVolume(conf worldConfig) collision.AABB[float64] {
	return collision.NewAABB(
		collision.NewPoint2(conf.Left, conf.Top),
		collision.NewPoint2(conf.Right, conf.Bottom),
	)
}

// feedEndpoint returns the websocket url of the local feed.
func feedEndpoint(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "ws://" + addr + "/feed"
}

// seedEntities returns the entities of the seed file followed by the random
// ones.
func seedEntities(ctx context.Context, conf config, client *http.Client) ([]*models.Entity, error) {
	var entities []*models.Entity

	if conf.Seed.File != "" {
		r, err := openSeed(ctx, conf.Seed.File, client)
		if err != nil {
			return nil, err
		}
		defer r.Close()

		if entities, err = models.DecodeSeed(r); err != nil {
			return nil, errors.New("reading seed failed").
				WithTag("seed_file", conf.Seed.File).
				Wrap(err)
		}
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	random := models.RandomEntities(rnd, conf.Seed.Count, worldVolume(conf.World), conf.Seed.MaxSpeed)
	return append(entities, random...), nil
}

func openSeed(ctx context.Context, location string, client *http.Client) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		f, err := os.Open(location)
		if err != nil {
			return nil, errors.New("opening seed file failed").
				WithTag("seed_file", location).
				Wrap(err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errors.New("creating seed request failed").
			WithTag("seed_url", location).
			Wrap(err)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, errors.New("fetching seed failed").
			WithTag("seed_url", location).
			Wrap(err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, errors.New("fetching seed failed").
			WithTag("seed_url", location).
			WithTag("status_code", res.StatusCode)
	}
	return res.Body, nil
}

func validateConfig(conf config) error {
	if conf.World.Left >= conf.World.Right {
		return errors.New("world left must be lower than world right").
			WithTag("left", conf.World.Left).
			WithTag("right", conf.World.Right)
	}

	if conf.World.Bottom >= conf.World.Top {
		return errors.New("world bottom must be lower than world top").
			WithTag("bottom", conf.World.Bottom).
			WithTag("top", conf.World.Top)
	}

	if conf.World.Capacity <= 0 {
		return errors.New("world capacity must be positive").
			WithTag("capacity", conf.World.Capacity)
	}

	if conf.FrameDuration <= 0 {
		return errors.New("frame duration must be positive").
			WithTag("frame_duration", conf.FrameDuration)
	}

	if conf.Seed.Count < 0 {
		return errors.New("seed count is negative").
			WithTag("seed_count", conf.Seed.Count)
	}

	if conf.Seed.MaxSpeed < 0 {
		return errors.New("seed max speed is negative").
			WithTag("seed_max_speed", conf.Seed.MaxSpeed)
	}

	return nil
}
