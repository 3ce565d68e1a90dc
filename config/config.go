package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"othello3/game"
	"othello3/meta"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile   = "othello3/config.yaml"
	tableFile = "othello3/qtable.gob"
	envPrefix = "OTHELLO3_"
)

// Seat kinds accepted in Config.Seats.
const (
	SeatRandom  = "random"
	SeatGreedy  = "greedy"
	SeatLearner = "qlearner"
	SeatMCTS    = "mcts"
	SeatConsole = "console"
)

// Rollout evaluations accepted in SearchConfig.Evaluation.
const (
	EvalLead     = "lead"
	EvalDisks    = "disks"
	EvalMobility = "mobility"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type AgentConfig struct {
	Epsilon    float64 `yaml:"epsilon"`
	DecayRate  float64 `yaml:"decay_rate"`
	MinEpsilon float64 `yaml:"min_epsilon"`
	Gamma      float64 `yaml:"gamma"`

	// LearningRate 0 selects the 1/(1+visits) schedule.
	LearningRate float64 `yaml:"learning_rate"`
}

type TrainConfig struct {
	Episodes  int    `yaml:"episodes"`
	LogEvery  int    `yaml:"log_every"`
	SaveEvery int    `yaml:"save_every"`
	Seed      uint64 `yaml:"seed"`
}

type SearchConfig struct {
	Goroutines  int           `yaml:"goroutines"`
	Episodes    int           `yaml:"episodes"`
	Duration    time.Duration `yaml:"duration"`
	Cutoff      int           `yaml:"cutoff"`
	Exploration float64       `yaml:"exploration"`
	Temperature float64       `yaml:"temperature"`
	TreeReuse   bool          `yaml:"tree_reuse"`

	// Evaluation scores cut off rollouts: lead, disks or mobility.
	Evaluation string `yaml:"evaluation"`
}

type GreedyConfig struct {
	Positional bool `yaml:"positional"`
}

type Config struct {
	Variant    string            `yaml:"variant"`
	Seats      []string          `yaml:"seats"` // one kind per player, A first
	Agent      AgentConfig       `yaml:"agent"`
	Train      TrainConfig       `yaml:"train"`
	Search     SearchConfig      `yaml:"search"`
	Greedy     GreedyConfig      `yaml:"greedy"`
	Reward     game.RewardConfig `yaml:"reward"`
	TablePath  string            `yaml:"table_path"`
	MetricsDir string            `yaml:"metrics_dir"`
	LogLevel   string            `yaml:"log_level"`
}

// Default mirrors the classic setup: a random A, a greedy B and the learner in
// seat C on the hexagonal board.
func Default() Config {
	return Config{
		Variant: game.Hex.Name,
		Seats:   []string{SeatRandom, SeatGreedy, SeatLearner},
		Agent: AgentConfig{
			Epsilon:   1.0,
			DecayRate: 0.99996,
			Gamma:     0.9,
		},
		Train: TrainConfig{
			Episodes:  meta.TRAIN_EPISODES,
			LogEvery:  meta.LOG_EVERY,
			SaveEvery: 10 * meta.LOG_EVERY,
		},
		Search: SearchConfig{
			Goroutines:  meta.GO_ROUTINES,
			Episodes:    meta.EPISODES,
			Cutoff:      meta.WITH_CUTOFF,
			Exploration: 2.0,
			Evaluation:  EvalLead,
		},
		Reward:    game.DefaultRewardConfig(),
		TablePath: filepath.Join(xdg.DataHome, tableFile),
		LogLevel:  "info",
	}
}

// Load layers the configuration: defaults, then the YAML file at path (or
// othello3/config.yaml in the XDG config directories when path is empty),
// then OTHELLO3_* variables from the environment or a .env file in the working
// directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to read .env")
	}

	if path == "" {
		if found, err := xdg.SearchConfigFile(cfgFile); err == nil {
			path = found
		}
	}
	if path != "" {
		if err := readCfgFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readCfgFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML to path, or to the XDG config
// directory when path is empty, and returns where it went.
func (c *Config) Save(path string) (string, error) {
	if path == "" {
		var err error
		if path, err = xdg.ConfigFile(cfgFile); err != nil {
			return "", fmt.Errorf("failed to locate config directory: %w", err)
		}
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0664); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(err, "failed to parse %s%s=%q to int", envPrefix, key, v)
			}
			*dst = n
		}
		return nil
	}
	float := func(key string, dst *float64) error {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.Wrapf(err, "failed to parse %s%s=%q to float", envPrefix, key, v)
			}
			*dst = f
		}
		return nil
	}

	str("VARIANT", &c.Variant)
	str("TABLE", &c.TablePath)
	str("METRICS_DIR", &c.MetricsDir)
	str("LOG_LEVEL", &c.LogLevel)
	if v, ok := lookup(envPrefix + "SEATS"); ok && v != "" {
		c.Seats = strings.Split(v, ",")
		for i := range c.Seats {
			c.Seats[i] = strings.TrimSpace(c.Seats[i])
		}
	}
	if v, ok := lookup(envPrefix + "SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "failed to parse %sSEED=%q to uint", envPrefix, v)
		}
		c.Train.Seed = seed
	}

	for _, set := range []error{
		integer("EPISODES", &c.Train.Episodes),
		integer("LOG_EVERY", &c.Train.LogEvery),
		integer("SAVE_EVERY", &c.Train.SaveEvery),
		integer("GOROUTINES", &c.Search.Goroutines),
		float("EPSILON", &c.Agent.Epsilon),
		float("DECAY_RATE", &c.Agent.DecayRate),
		float("MIN_EPSILON", &c.Agent.MinEpsilon),
		float("GAMMA", &c.Agent.Gamma),
		float("LEARNING_RATE", &c.Agent.LearningRate),
		float("WIN_BONUS", &c.Reward.WinBonus),
		float("LOSS_PENALTY", &c.Reward.LossPenalty),
	} {
		if set != nil {
			return set
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := game.VariantByName(c.Variant); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if len(c.Seats) != game.NumPlayers {
		return &InvalidConfig{fmt.Sprintf("need %d seats, got %d", game.NumPlayers, len(c.Seats))}
	}
	for i, s := range c.Seats {
		switch s {
		case SeatRandom, SeatGreedy, SeatLearner, SeatMCTS, SeatConsole:
		default:
			return &InvalidConfig{fmt.Sprintf("unknown seat %q for %s", s, game.Player(i))}
		}
	}
	for name, v := range map[string]float64{
		"agent.epsilon":     c.Agent.Epsilon,
		"agent.min_epsilon": c.Agent.MinEpsilon,
		"agent.gamma":       c.Agent.Gamma,
		"agent.decay_rate":  c.Agent.DecayRate,
	} {
		if v < 0 || v > 1 {
			return &InvalidConfig{fmt.Sprintf("%s must be within [0, 1], got %g", name, v)}
		}
	}
	if c.Agent.LearningRate < 0 || c.Agent.LearningRate > 1 {
		return &InvalidConfig{fmt.Sprintf("agent.learning_rate must be within [0, 1], got %g", c.Agent.LearningRate)}
	}
	if c.Train.Episodes < 0 || c.Train.LogEvery < 0 || c.Train.SaveEvery < 0 {
		return &InvalidConfig{"train counts cannot be negative"}
	}
	if c.Search.Episodes <= 0 && c.Search.Duration <= 0 {
		return &InvalidConfig{"search needs episodes or a duration"}
	}
	switch c.Search.Evaluation {
	case "", EvalLead, EvalDisks, EvalMobility:
	default:
		return &InvalidConfig{fmt.Sprintf("unknown search evaluation %q", c.Search.Evaluation)}
	}
	if c.TablePath == "" {
		return &InvalidConfig{"table_path cannot be empty"}
	}
	return nil
}

// EnsureConsole seats a console player in seat A unless one of the seats is
// already a console, and reports whether it changed the lineup.
func (c *Config) EnsureConsole() bool {
	for _, s := range c.Seats {
		if s == SeatConsole {
			return false
		}
	}
	c.Seats = append([]string{SeatConsole}, c.Seats[min(1, len(c.Seats)):]...)
	return true
}

// Board returns the configured variant.
func (c *Config) Board() game.Variant {
	v, _ := game.VariantByName(c.Variant)
	return v
}
