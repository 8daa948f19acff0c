// Package registry loads the sales roster: role pools of owners and
// the sender personas used for outreach. Sources are a YAML file, a
// Notion database, or the built-in fixture roster.
package registry

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/notion"
)

// Config is the loaded roster plus sender personas.
type Config struct {
	Roster  model.Roster                   `yaml:"team"`
	Senders map[string]model.SenderPersona `yaml:"senders"`
}

// FixtureRoster returns the static prototype team. Production setups
// load the roster from YAML or Notion instead.
func FixtureRoster() model.Roster {
	return model.Roster{
		"Senior AE": {
			{Name: "Priya Nair", Email: "priya@company.co", Capacity: 30},
			{Name: "Vikram Sethi", Email: "vikram@company.co", Capacity: 30},
		},
		"AE": {
			{Name: "Sneha Kapoor", Email: "sneha@company.co", Capacity: 50},
			{Name: "Rahul Desai", Email: "rahul@company.co", Capacity: 50},
			{Name: "Meera Iyer", Email: "meera@company.co", Capacity: 50},
		},
		"SDR": {
			{Name: "Arjun Sharma", Email: "arjun@company.co", Capacity: 60},
			{Name: "Divya Menon", Email: "divya@company.co", Capacity: 60},
			{Name: "Karan Bose", Email: "karan@company.co", Capacity: 60},
		},
	}
}

// FixtureSenders returns the static sender personas per level.
func FixtureSenders() map[string]model.SenderPersona {
	return map[string]model.SenderPersona{
		"Leadership": {Name: "Rohan Mehta", Title: "VP of Partnerships", Email: "rohan@company.co"},
		"AE":         {Name: "Sneha Kapoor", Title: "Account Executive", Email: "sneha@company.co"},
		"SDR":        {Name: "Arjun Sharma", Title: "Sales Development Rep", Email: "arjun@company.co"},
	}
}

// Fixture returns the built-in roster configuration.
func Fixture() *Config {
	return &Config{Roster: FixtureRoster(), Senders: FixtureSenders()}
}

// LoadYAML reads a roster configuration file. Sender personas are
// optional; missing levels fall back to the fixture personas.
func LoadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: read roster %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, eris.Wrap(err, "registry: parse roster yaml")
	}

	if cfg.Senders == nil {
		cfg.Senders = map[string]model.SenderPersona{}
	}
	for level, p := range FixtureSenders() {
		if _, ok := cfg.Senders[level]; !ok {
			cfg.Senders[level] = p
		}
	}
	return &cfg, nil
}

// Load resolves a roster source. An empty source yields the fixture
// roster; "notion:<database-id>" queries Notion; anything else is a
// YAML file path.
func Load(ctx context.Context, source string, client notion.Client) (*Config, error) {
	switch {
	case source == "":
		zap.L().Debug("registry: using fixture roster")
		return Fixture(), nil
	case len(source) > 7 && source[:7] == "notion:":
		if client == nil {
			return nil, eris.New("registry: notion roster requires a notion token")
		}
		roster, err := LoadNotionRoster(ctx, client, source[7:])
		if err != nil {
			return nil, err
		}
		return &Config{Roster: roster, Senders: FixtureSenders()}, nil
	default:
		return LoadYAML(source)
	}
}

// Validate checks that every role pool the routing rules reference has
// at least one member and that every sender level resolves.
func Validate(cfg *Config, rules map[model.SeniorityTier]model.RouteRule) error {
	for tier, rule := range rules {
		if len(cfg.Roster[rule.OwnerRole]) == 0 {
			return eris.Errorf("registry: role pool %q (tier %s) has no members", rule.OwnerRole, tier)
		}
		if _, ok := cfg.Senders[rule.SenderLevel]; !ok {
			return eris.Errorf("registry: sender persona %q (tier %s) is not defined", rule.SenderLevel, tier)
		}
	}
	return nil
}
