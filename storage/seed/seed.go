// Package seed loads the initial datasets of the store from YAML.
package seed

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/account"
	"github.com/trezcool/funil/core/contact"
	"github.com/trezcool/funil/core/lead"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/pipeline"
	"github.com/trezcool/funil/core/proposal"
	"github.com/trezcool/funil/core/student"
	"github.com/trezcool/funil/core/task"
	inmemdb "github.com/trezcool/funil/storage/database/inmem"
)

//go:embed default.yaml
var defaultDataset []byte

// Dataset is the content of a seed file. Pipelines are lists of columns keyed by title;
// a card's stage or status is the title of its column.
type Dataset struct {
	Accounts      []account.Account                    `yaml:"accounts"`
	Contacts      []contact.Contact                    `yaml:"contacts"`
	Students      []student.Student                    `yaml:"students"`
	Leads         []pipeline.Column[lead.Card]         `yaml:"leads"`
	Opportunities []pipeline.Column[opportunity.Card]  `yaml:"opportunities"`
	Proposals     []pipeline.Column[proposal.Proposal] `yaml:"proposals"`
	Tasks         []task.Task                          `yaml:"tasks"`
}

// Parse decodes a YAML dataset. Unknown keys are rejected.
func Parse(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil && err != io.EOF {
		return Dataset{}, errors.Wrap(err, "decoding dataset")
	}
	for i := range ds.Proposals {
		for j := range ds.Proposals[i].Cards {
			ds.Proposals[i].Cards[j].Status = ds.Proposals[i].Title
		}
	}
	return ds, nil
}

// Default returns the dataset embedded in the binary.
func Default() (Dataset, error) {
	return Parse(bytes.NewReader(defaultDataset))
}

// Load reads the dataset at path, or the embedded one when path is empty.
func Load(path string) (Dataset, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, errors.Wrap(err, "opening dataset")
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

func checkColumns(titles []string, got []string) error {
	known := make(map[string]bool, len(titles))
	for _, t := range titles {
		known[t] = true
	}
	seen := make(map[string]bool, len(got))
	for _, t := range got {
		if !known[t] {
			return errors.Errorf("unknown column %q", t)
		}
		if seen[t] {
			return errors.Errorf("column %q listed twice", t)
		}
		seen[t] = true
	}
	return nil
}

func titlesOf[T pipeline.Entity[T]](cols []pipeline.Column[T]) []string {
	titles := make([]string, len(cols))
	for i, col := range cols {
		titles[i] = col.Title
	}
	return titles
}

// ids collects the ids of items, failing on duplicates.
type ids map[string]bool

func (set ids) add(kind, id string) error {
	if id == "" {
		return errors.Errorf("%s without id", kind)
	}
	if set[id] {
		return errors.Errorf("duplicate %s %q", kind, id)
	}
	set[id] = true
	return nil
}

// Validate checks every entity against its validation rules, every cross-entity reference
// and the single Accepted proposal rule.
func Validate(ds Dataset, validate *validator.Validate) error {
	if err := checkColumns(opportunity.Stages, titlesOf(ds.Opportunities)); err != nil {
		return errors.Wrap(err, "opportunities")
	}
	if err := checkColumns(proposal.Statuses, titlesOf(ds.Proposals)); err != nil {
		return errors.Wrap(err, "proposals")
	}
	if err := checkColumns(lead.Stages, titlesOf(ds.Leads)); err != nil {
		return errors.Wrap(err, "leads")
	}

	accounts, contacts, students, leads, opportunities, proposals, tasks := ids{}, ids{}, ids{}, ids{}, ids{}, ids{}, ids{}

	for _, a := range ds.Accounts {
		if err := accounts.add("account", a.ID); err != nil {
			return err
		}
		if err := a.Validate(validate); err != nil {
			return errors.Wrapf(err, "account %q", a.ID)
		}
	}
	for _, c := range ds.Contacts {
		if err := contacts.add("contact", c.ID); err != nil {
			return err
		}
		if err := c.Validate(validate); err != nil {
			return errors.Wrapf(err, "contact %q", c.ID)
		}
		if c.AccountID != "" && !accounts[c.AccountID] {
			return errors.Errorf("contact %q: unknown account %q", c.ID, c.AccountID)
		}
	}
	for _, a := range ds.Accounts {
		if a.MainContactID != "" && !contacts[a.MainContactID] {
			return errors.Errorf("account %q: unknown main contact %q", a.ID, a.MainContactID)
		}
	}
	for _, s := range ds.Students {
		if err := students.add("student", s.ID); err != nil {
			return err
		}
		if err := s.Validate(validate); err != nil {
			return errors.Wrapf(err, "student %q", s.ID)
		}
	}
	for _, col := range ds.Leads {
		for _, c := range col.Cards {
			if err := leads.add("lead", c.ID); err != nil {
				return err
			}
			if err := c.Validate(validate); err != nil {
				return errors.Wrapf(err, "lead %q", c.ID)
			}
		}
	}
	for _, col := range ds.Opportunities {
		for _, c := range col.Cards {
			if err := opportunities.add("opportunity", c.ID); err != nil {
				return err
			}
			if err := c.Validate(validate); err != nil {
				return errors.Wrapf(err, "opportunity %q", c.ID)
			}
			if c.AccountID != "" && !accounts[c.AccountID] {
				return errors.Errorf("opportunity %q: unknown account %q", c.ID, c.AccountID)
			}
			if c.ContactID != "" && !contacts[c.ContactID] {
				return errors.Errorf("opportunity %q: unknown contact %q", c.ID, c.ContactID)
			}
		}
	}

	accepted := make(map[string]string)
	for _, col := range ds.Proposals {
		for _, p := range col.Cards {
			if err := proposals.add("proposal", p.ID); err != nil {
				return err
			}
			p.Status = col.Title
			if err := p.Validate(validate); err != nil {
				return errors.Wrapf(err, "proposal %q", p.ID)
			}
			if !opportunities[p.OpportunityID] {
				return errors.Errorf("proposal %q: unknown opportunity %q", p.ID, p.OpportunityID)
			}
			if !p.IsAccepted() {
				continue
			}
			if other, ok := accepted[p.OpportunityID]; ok {
				return errors.Errorf("opportunity %q has two accepted proposals: %q and %q", p.OpportunityID, other, p.ID)
			}
			accepted[p.OpportunityID] = p.ID
		}
	}

	related := map[string]ids{
		task.RelatedAccount:     accounts,
		task.RelatedContact:     contacts,
		task.RelatedOpportunity: opportunities,
		task.RelatedLead:        leads,
	}
	for _, t := range ds.Tasks {
		if err := tasks.add("task", t.ID); err != nil {
			return err
		}
		if err := t.Validate(validate); err != nil {
			return errors.Wrapf(err, "task %q", t.ID)
		}
		if t.RelatedObjectID != "" && !related[t.RelatedObjectType][t.RelatedObjectID] {
			return errors.Errorf("task %q: unknown %s %q", t.ID, t.RelatedObjectType, t.RelatedObjectID)
		}
	}
	return nil
}

// Snapshot converts the dataset into the store content.
func (ds Dataset) Snapshot() inmemdb.Snapshot {
	return inmemdb.Snapshot{
		Opportunities: ds.Opportunities,
		Proposals:     ds.Proposals,
		Leads:         ds.Leads,
		Accounts:      ds.Accounts,
		Contacts:      ds.Contacts,
		Students:      ds.Students,
		Tasks:         ds.Tasks,
	}
}

// Apply validates the dataset and replaces the store content with it.
func Apply(db *inmemdb.DB, ds Dataset, validate *validator.Validate, logger core.Logger) error {
	if err := Validate(ds, validate); err != nil {
		return errors.Wrap(err, "validating dataset")
	}
	if err := db.Restore(ds.Snapshot()); err != nil {
		return errors.Wrap(err, "restoring dataset")
	}
	snap := db.Snapshot()
	logger.Info("store seeded", map[string]interface{}{
		"accounts":      len(snap.Accounts),
		"contacts":      len(snap.Contacts),
		"students":      len(snap.Students),
		"tasks":         len(snap.Tasks),
		"leads":         cardCount(snap.Leads),
		"opportunities": cardCount(snap.Opportunities),
		"proposals":     cardCount(snap.Proposals),
	})
	return nil
}

func cardCount[T pipeline.Entity[T]](cols []pipeline.Column[T]) int {
	var n int
	for _, col := range cols {
		n += len(col.Cards)
	}
	return n
}
