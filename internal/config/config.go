package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Colors holds color values for every UI style.
// Values can be xterm-256 codes (0-255) or hex colors (#rrggbb).
type Colors struct {
	Title        string `toml:"title"`
	Header       string `toml:"header"`
	SelectedBG   string `toml:"selected_bg"`
	SelectedFG   string `toml:"selected_fg"`
	Metric       string `toml:"metric"`
	Streak       string `toml:"streak"`
	Badge        string `toml:"badge"`
	TaskOpen     string `toml:"task_open"`
	TaskDone     string `toml:"task_done"`
	Hint         string `toml:"hint"`
	Highlight    string `toml:"highlight"`
	Notification string `toml:"notification"`
	Help         string `toml:"help"`
	Border       string `toml:"border"`
	Separator    string `toml:"separator"`
	ModalTitle   string `toml:"modal_title"`
	ModalActive  string `toml:"modal_active"`
	ModalDim     string `toml:"modal_dim"`
	Error        string `toml:"error"`
	Pending      string `toml:"pending"`
	Pill         string `toml:"pill"`
	PillSelected string `toml:"pill_selected"`
	CoachUser    string `toml:"coach_user"`
	CoachReply   string `toml:"coach_reply"`
}

// Layout holds pane sizing values.
type Layout struct {
	DashboardWidth int `toml:"dashboard_width"` // percentage of terminal width for the left panel
	ProgressWidth  int `toml:"progress_width"`  // character width of the level progress bar
}

// Server holds game server connection settings.
type Server struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // 0 means no client-side timeout
}

// Player identifies the local participant on the leaderboard.
type Player struct {
	Username string `toml:"username"`
}

// Config is the top-level configuration.
type Config struct {
	Server Server `toml:"server"`
	Player Player `toml:"player"`
	Colors Colors `toml:"colors"`
	Layout Layout `toml:"layout"`
}

// Default returns a Config populated with the current hardcoded defaults.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL:        "http://localhost:5000",
			TimeoutSeconds: 0,
		},
		Player: Player{
			Username: "Player-001",
		},
		Colors: Colors{
			Title:        "#cba6f7", // Mauve
			Header:       "#89b4fa", // Blue
			SelectedBG:   "#313244", // Surface 0
			SelectedFG:   "#cdd6f4", // Text
			Metric:       "#89b4fa", // Blue
			Streak:       "#fab387", // Peach
			Badge:        "#f9e2af", // Yellow
			TaskOpen:     "#cdd6f4", // Text
			TaskDone:     "#7f849c", // Overlay 1
			Hint:         "#94e2d5", // Teal
			Highlight:    "#a6e3a1", // Green
			Notification: "#a6adc8", // Subtext 0
			Help:         "#7f849c", // Overlay 1
			Border:       "#585b70", // Surface 2
			Separator:    "#585b70", // Surface 2
			ModalTitle:   "#cba6f7", // Mauve
			ModalActive:  "#cba6f7", // Mauve
			ModalDim:     "#7f849c", // Overlay 1
			Error:        "#f38ba8", // Red
			Pending:      "#f5c2e7", // Pink
			Pill:         "#7f849c", // Overlay 1
			PillSelected: "#94e2d5", // Teal
			CoachUser:    "#89b4fa", // Blue
			CoachReply:   "#a6e3a1", // Green
		},
		Layout: Layout{
			DashboardWidth: 55,
			ProgressWidth:  30,
		},
	}
}

// Path returns the config file path, respecting XDG_CONFIG_HOME.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "netquest", "netquest.conf")
}

// Load reads the config file and returns a Config. Omitted fields keep
// their default values. If the file does not exist, defaults are returned
// with no error.
func Load() (Config, error) {
	cfg := Default()
	path := Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

const defaultFileContent = `# netquest configuration
# Uncomment and modify values to customize. All values are optional.
# Colors can be hex (#rrggbb) or xterm-256 codes (0-255).
# Defaults use the Catppuccin Mocha palette.

[server]
# base_url        = "http://localhost:5000"
# timeout_seconds = 0      # 0 = wait indefinitely

[player]
# username = "Player-001"  # highlighted on the leaderboard

[colors]
# title         = "#cba6f7"  # Mauve
# header        = "#89b4fa"  # Blue
# selected_bg   = "#313244"  # Surface 0
# selected_fg   = "#cdd6f4"  # Text
# metric        = "#89b4fa"  # Blue
# streak        = "#fab387"  # Peach
# badge         = "#f9e2af"  # Yellow
# task_open     = "#cdd6f4"  # Text
# task_done     = "#7f849c"  # Overlay 1
# hint          = "#94e2d5"  # Teal
# highlight     = "#a6e3a1"  # Green
# notification  = "#a6adc8"  # Subtext 0
# help          = "#7f849c"  # Overlay 1
# border        = "#585b70"  # Surface 2
# separator     = "#585b70"  # Surface 2
# modal_title   = "#cba6f7"  # Mauve
# modal_active  = "#cba6f7"  # Mauve
# modal_dim     = "#7f849c"  # Overlay 1
# error         = "#f38ba8"  # Red
# pending       = "#f5c2e7"  # Pink
# pill          = "#7f849c"  # Overlay 1
# pill_selected = "#94e2d5"  # Teal
# coach_user    = "#89b4fa"  # Blue
# coach_reply   = "#a6e3a1"  # Green

[layout]
# dashboard_width = 55   # percentage of terminal width for left panel
# progress_width  = 30   # character width of the level progress bar
`

// WriteDefault writes the default config file with all values commented out.
// It no-ops if the file already exists. Parent directories are created as needed.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // file already exists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultFileContent), 0o644)
}
