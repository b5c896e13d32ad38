package config

import (
	"os"
	"path"
	"slices"
	"time"

	"github.com/oclaw/supportreq/types"
	"gopkg.in/yaml.v3"
)

const appDirName = "supportreq"

type Duration time.Duration

var (
	_ yaml.Marshaler   = Duration(0)
	_ yaml.Unmarshaler = (*Duration)(nil)
)

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	dd, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

type NotificationConditions struct {
	Variants []types.Variant `yaml:"variants,omitempty" validate:"dive,oneof=error success"` // empty means every variant
}

func (c *NotificationConditions) Accepts(variant types.Variant) bool {
	return len(c.Variants) == 0 || slices.Contains(c.Variants, variant)
}

type Notification struct {
	Type       types.NotificationType `yaml:"type" validate:"oneof=cli telegram"`
	Conditions NotificationConditions `yaml:"conditions,omitempty"`
}

// Labels are the user facing texts of the process action.
type Labels struct {
	ErrorTitle      string `yaml:"error_title" validate:"required"`
	SuccessTitle    string `yaml:"success_title" validate:"required"`
	RecordClosed    string `yaml:"record_closed" validate:"required"`
	RecordProcessed string `yaml:"record_processed" validate:"required"`
}

type NotifierInitMode int

const (
	NotifierInitOnStartup NotifierInitMode = 1
	NotifierInitOnDemand  NotifierInitMode = 2
)

type SupportRequestConfig struct {
	DirPath          string           `yaml:"dir_path" validate:"required"` // directory to store support records
	RPCSocketName    string           `yaml:"rpc_socket_name" validate:"required"`
	DeadlineSec      int64            `yaml:"deadline_sec" validate:"gte=1"`
	RefreshDelay     Duration         `yaml:"refresh_delay" validate:"gte=0"` // pause between the success notification and the view refresh
	LogLevel         string           `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Labels           Labels           `yaml:"labels"`
	Notifications    []Notification   `yaml:"notifications" validate:"dive"`
	NotifierSettings NotifierSettings `yaml:"notifier_settings,omitempty"`

	InitMode           NotifierInitMode `yaml:"-"` // create all notifiers at the startup of the application or at the first notification
	AsyncNotifications bool             `yaml:"-"` // publish notification in a sync or async way
}

type NotifierSettings struct {
	TelegramChatID int64 `yaml:"telegram_chat_id,omitempty"`
}

func DefaultLabels() Labels {
	return Labels{
		ErrorTitle:      "Error",
		SuccessTitle:    "Éxito",
		RecordClosed:    "La solicitud de soporte ya está cerrada y no puede procesarse.",
		RecordProcessed: "La solicitud de soporte se ha procesado correctamente.",
	}
}

func DefaultSupportRequestConfig() *SupportRequestConfig {
	return &SupportRequestConfig{
		DirPath:       path.Join(os.TempDir(), appDirName),
		RPCSocketName: "/tmp/supportreq-rpc.sock",
		DeadlineSec:   5,
		RefreshDelay:  Duration(time.Second),
		LogLevel:      "info",
		Labels:        DefaultLabels(),
		Notifications: []Notification{
			{Type: types.NotificationCLI},
		},
		InitMode: NotifierInitOnStartup,
	}
}

func (cfg *SupportRequestConfig) Save(filePath string) error {
	dirPath := path.Dir(filePath)
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()

	return encoder.Encode(cfg)
}

func DefaultLoc() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return path.Join(dir, appDirName, "config.yaml"), nil
}

func ReadFrom(filePath string) (*SupportRequestConfig, error) {
	reader, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	// unset keys keep their defaults
	ret := DefaultSupportRequestConfig()
	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(ret); err != nil {
		return nil, err
	}

	if err := loadEnv(ret, path.Dir(filePath)); err != nil {
		return nil, err
	}

	if err := ret.Validate(); err != nil {
		return nil, err
	}

	return ret, nil
}
