package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"focustimer/internal/core/model"
)

// DefaultSettingsFileName is the settings file created inside the data dir.
const DefaultSettingsFileName = "settings.yaml"

// ErrLabelNotFound indicates a label name with no stored profile.
var ErrLabelNotFound = errors.New("label not found")

type yamlProfile struct {
	IsCountdown             bool `yaml:"is_countdown"`
	WorkDuration            int  `yaml:"work_duration"`
	BreakDuration           int  `yaml:"break_duration"`
	LongBreakDuration       int  `yaml:"long_break_duration"`
	SessionsBeforeLongBreak int  `yaml:"sessions_before_long_break"`
	IsLongBreakEnabled      bool `yaml:"is_long_break_enabled"`
	IsBreakEnabled          bool `yaml:"is_break_enabled"`
	WorkBreakRatio          int  `yaml:"work_break_ratio"`
}

type yamlBreakBudget struct {
	AmountMillis int64 `yaml:"amount_ms"`
	StartMillis  int64 `yaml:"start_ms"`
}

type yamlLongBreak struct {
	Streak                int   `yaml:"streak"`
	LastWorkEndTimeMillis int64 `yaml:"last_work_end_ms"`
}

type yamlSettings struct {
	ActiveLabel    string                 `yaml:"active_label"`
	AutoStartWork  bool                   `yaml:"auto_start_work"`
	AutoStartBreak bool                   `yaml:"auto_start_break"`
	DefaultProfile *yamlProfile           `yaml:"default_profile,omitempty"`
	Labels         map[string]yamlProfile `yaml:"labels,omitempty"`
	BreakBudget    yamlBreakBudget        `yaml:"break_budget"`
	LongBreak      yamlLongBreak          `yaml:"long_break"`
}

// SettingsStore keeps labels, auto-start flags and the persisted break budget
// and streak in a single YAML file. Every mutation is written through.
type SettingsStore struct {
	mu       sync.Mutex
	path     string
	logger   *slog.Logger
	validate *validator.Validate
	data     yamlSettings

	watchMu  sync.Mutex
	watchers map[chan model.Label]struct{}
}

// OpenSettings reads the settings file at path.
// If the file does not exist, default settings are used until the first save.
func OpenSettings(path string, logger *slog.Logger) (*SettingsStore, error) {
	store := &SettingsStore{
		path:     path,
		logger:   logger.With("component", "settings_store"),
		validate: validator.New(),
		watchers: make(map[chan model.Label]struct{}),
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			store.logger.Info("settings file not found, using defaults", "path", path)
			return store, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(rawData, &store.data); err != nil {
		return nil, fmt.Errorf("parse settings yaml: %w", err)
	}
	if _, ok := store.data.Labels[store.data.ActiveLabel]; !ok && store.data.ActiveLabel != "" {
		store.logger.Warn("active label missing, falling back to default", "label", store.data.ActiveLabel)
		store.data.ActiveLabel = ""
	}
	return store, nil
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return store.path
}

// ActiveLabel returns the label new segments are timed with.
func (store *SettingsStore) ActiveLabel(context.Context) (model.Label, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.labelLocked(store.data.ActiveLabel)
}

// Label returns a stored label by name. The empty name is the default label.
func (store *SettingsStore) Label(_ context.Context, name string) (model.Label, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.labelLocked(name)
}

// Labels returns the names of all stored labels, sorted.
func (store *SettingsStore) Labels(context.Context) []string {
	store.mu.Lock()
	defer store.mu.Unlock()
	names := make([]string, 0, len(store.data.Labels))
	for name := range store.data.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PutLabel creates or replaces a label. Updating the active label notifies
// watchers so the timer picks up the new profile.
func (store *SettingsStore) PutLabel(_ context.Context, label model.Label) error {
	if err := store.validateProfile(label.Profile); err != nil {
		return err
	}

	store.mu.Lock()
	previous := store.data
	profile := fromProfile(label.Profile)
	if label.IsDefault() {
		store.data.DefaultProfile = &profile
	} else {
		labels := make(map[string]yamlProfile, len(store.data.Labels)+1)
		for name, stored := range store.data.Labels {
			labels[name] = stored
		}
		labels[label.Name] = profile
		store.data.Labels = labels
	}
	if err := store.saveLocked(); err != nil {
		store.data = previous
		store.mu.Unlock()
		return err
	}
	active := store.data.ActiveLabel == label.Name
	store.mu.Unlock()

	if active {
		store.notify(label)
	}
	return nil
}

// SetActiveLabel switches the active label and notifies watchers.
func (store *SettingsStore) SetActiveLabel(_ context.Context, name string) error {
	store.mu.Lock()
	label, err := store.labelLocked(name)
	if err != nil {
		store.mu.Unlock()
		return err
	}
	previous := store.data.ActiveLabel
	store.data.ActiveLabel = name
	if err := store.saveLocked(); err != nil {
		store.data.ActiveLabel = previous
		store.mu.Unlock()
		return err
	}
	store.mu.Unlock()

	store.logger.Info("active label changed", "label", name)
	store.notify(label)
	return nil
}

// WatchActiveLabel streams active label changes until ctx is done.
// A slow reader only sees the latest label.
func (store *SettingsStore) WatchActiveLabel(ctx context.Context) <-chan model.Label {
	ch := make(chan model.Label, 1)
	store.watchMu.Lock()
	store.watchers[ch] = struct{}{}
	store.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		store.watchMu.Lock()
		delete(store.watchers, ch)
		close(ch)
		store.watchMu.Unlock()
	}()
	return ch
}

// AutoStartWork reports whether work starts automatically after a break.
func (store *SettingsStore) AutoStartWork(context.Context) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.data.AutoStartWork, nil
}

// AutoStartBreak reports whether a break starts automatically after work.
func (store *SettingsStore) AutoStartBreak(context.Context) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.data.AutoStartBreak, nil
}

// SetAutoStart updates both auto-start flags.
func (store *SettingsStore) SetAutoStart(_ context.Context, work, brk bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	previousWork, previousBreak := store.data.AutoStartWork, store.data.AutoStartBreak
	store.data.AutoStartWork, store.data.AutoStartBreak = work, brk
	if err := store.saveLocked(); err != nil {
		store.data.AutoStartWork, store.data.AutoStartBreak = previousWork, previousBreak
		return err
	}
	return nil
}

// BreakBudgetData returns the persisted break budget and its reference time.
func (store *SettingsStore) BreakBudgetData(context.Context) (model.BreakBudgetData, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return model.BreakBudgetData{
		BreakBudget:      time.Duration(store.data.BreakBudget.AmountMillis) * time.Millisecond,
		BreakBudgetStart: store.data.BreakBudget.StartMillis,
	}, nil
}

// SaveBreakBudgetData persists the break budget.
func (store *SettingsStore) SaveBreakBudgetData(_ context.Context, data model.BreakBudgetData) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.data.BreakBudget = yamlBreakBudget{
		AmountMillis: data.BreakBudget.Milliseconds(),
		StartMillis:  data.BreakBudgetStart,
	}
	return store.saveLocked()
}

// LongBreakData returns the persisted streak state.
func (store *SettingsStore) LongBreakData(context.Context) (model.LongBreakData, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return model.LongBreakData{
		Streak:          store.data.LongBreak.Streak,
		LastWorkEndTime: store.data.LongBreak.LastWorkEndTimeMillis,
	}, nil
}

// SaveLongBreakData persists the streak state.
func (store *SettingsStore) SaveLongBreakData(_ context.Context, data model.LongBreakData) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.data.LongBreak = yamlLongBreak{
		Streak:                data.Streak,
		LastWorkEndTimeMillis: data.LastWorkEndTime,
	}
	return store.saveLocked()
}

func (store *SettingsStore) labelLocked(name string) (model.Label, error) {
	if name == "" {
		label := model.DefaultLabel()
		if store.data.DefaultProfile != nil {
			label.Profile = store.data.DefaultProfile.toProfile()
		}
		return label, nil
	}
	profile, ok := store.data.Labels[name]
	if !ok {
		return model.Label{}, fmt.Errorf("%w: %q", ErrLabelNotFound, name)
	}
	return model.Label{Name: name, Profile: profile.toProfile()}, nil
}

func (store *SettingsStore) validateProfile(profile model.TimerProfile) error {
	if err := store.validate.Struct(profile); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidProfile, err)
	}
	return profile.Validate()
}

func (store *SettingsStore) notify(label model.Label) {
	store.watchMu.Lock()
	defer store.watchMu.Unlock()
	for ch := range store.watchers {
		select {
		case ch <- label:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- label:
		default:
		}
	}
}

func (store *SettingsStore) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	serialized, err := yaml.Marshal(store.data)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tmpPath := store.path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, store.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

func fromProfile(profile model.TimerProfile) yamlProfile {
	return yamlProfile{
		IsCountdown:             profile.IsCountdown,
		WorkDuration:            profile.WorkDuration,
		BreakDuration:           profile.BreakDuration,
		LongBreakDuration:       profile.LongBreakDuration,
		SessionsBeforeLongBreak: profile.SessionsBeforeLongBreak,
		IsLongBreakEnabled:      profile.IsLongBreakEnabled,
		IsBreakEnabled:          profile.IsBreakEnabled,
		WorkBreakRatio:          profile.WorkBreakRatio,
	}
}

func (profile yamlProfile) toProfile() model.TimerProfile {
	return model.TimerProfile{
		IsCountdown:             profile.IsCountdown,
		WorkDuration:            profile.WorkDuration,
		BreakDuration:           profile.BreakDuration,
		LongBreakDuration:       profile.LongBreakDuration,
		SessionsBeforeLongBreak: profile.SessionsBeforeLongBreak,
		IsLongBreakEnabled:      profile.IsLongBreakEnabled,
		IsBreakEnabled:          profile.IsBreakEnabled,
		WorkBreakRatio:          profile.WorkBreakRatio,
	}
}
