package internal

import (
	"fmt"

	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/services"
	"emotrack/internal/storage/interfaces"
	"emotrack/internal/structures"
)

// Toolkit gives one-shot commands the restored store without starting the
// HTTP server or the alert sweep.
type Toolkit struct {
	Config    *structures.Config
	Logger    providers.Logger
	Directory providers.DirectoryInterface
	Store     services.EmotionServiceInterface
	Dashboard services.DashboardServiceInterface
}

func NewToolkit(conf *structures.Config, logger providers.Logger, directory providers.DirectoryInterface, store services.EmotionServiceInterface, dashboard services.DashboardServiceInterface, scheduler interfaces.SchedulerInterface) (*Toolkit, error) {
	if err := scheduler.Restore(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return &Toolkit{
		Config:    conf,
		Logger:    logger,
		Directory: directory,
		Store:     store,
		Dashboard: dashboard,
	}, nil
}

// Declare validates and stores one declaration for a known subject.
func (tk *Toolkit) Declare(d models.Declaration) (models.EmotionRecord, error) {
	if err := d.ValidateAt(tk.Store.Now()); err != nil {
		return models.EmotionRecord{}, err
	}
	if _, ok := tk.Directory.Subject(d.SubjectID); !ok {
		return models.EmotionRecord{}, fmt.Errorf("%w: %q", services.ErrUnknownSubject, d.SubjectID)
	}
	saved, err := tk.Store.Upsert(d.ToRecord())
	if err != nil {
		return models.EmotionRecord{}, err
	}
	tk.Logger.Infof(providers.TypeApp, "Declaration %s stored from the command line", saved.ID)
	return saved, nil
}

func (tk *Toolkit) Reset() error {
	n := tk.Store.Len()
	if err := tk.Store.Reset(); err != nil {
		return err
	}
	tk.Logger.Warnf(providers.TypeApp, "Store reset, %d records removed", n)
	return nil
}

func (tk *Toolkit) Close() {
	tk.Logger.Close()
}
