package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/bau-portal/internal/application/auth"
	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/forms"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/internal/domain/repository"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Betriebe []seedBetrieb `yaml:"betriebe"`
	Users    []seedUser    `yaml:"users"`
	Bedarfe  []seedBedarf  `yaml:"bedarfe"`
}

type seedBetrieb struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Telefon string `yaml:"telefon"`
	Adresse string `yaml:"adresse"`
	Status  string `yaml:"status"`
}

type seedUser struct {
	Email     string `yaml:"email"`
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	BetriebID string `yaml:"betriebId"`
}

type seedBedarf struct {
	BetriebID        string `yaml:"betriebId"`
	Titel            string `yaml:"titel"`
	Beschreibung     string `yaml:"beschreibung"`
	Adresse          string `yaml:"adresse"`
	DatumVon         string `yaml:"datumVon"`
	DatumBis         string `yaml:"datumBis"`
	ZimmermannAnzahl int    `yaml:"zimmermannAnzahl"`
	HolzbauAnzahl    int    `yaml:"holzbauAnzahl"`
	StundenProTag    int    `yaml:"stundenProTag"`
	Stundenlohn      string `yaml:"stundenlohn"`
	MitWerkzeug      bool   `yaml:"mitWerkzeug"`
	MitFahrzeug      bool   `yaml:"mitFahrzeug"`
	Status           string `yaml:"status"`
}

// readSeed lee el archivo de datos; path vacío usa los datos incluidos. Los
// exportes antiguos vienen en ISO-8859-1 y se convierten a UTF-8.
func readSeed(path string) (*seedFile, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("leer seed: %w", err)
		}
		raw = b
	}
	var r io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	var s seedFile
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decodificar seed: %w", err)
	}
	return &s, nil
}

// seeder reúne lo necesario para poblar los repositorios.
type seeder struct {
	betriebe repository.BetriebRepository
	authUC   *auth.AuthUseCase
	bedarfUC *usecase.BedarfUseCase
	password string
}

// apply crea Betriebe con id fijo, usuarios y Bedarfe; devuelve cuántos de cada uno.
func (sd seeder) apply(s *seedFile) (betriebe, users, bedarfe int, err error) {
	now := time.Now()
	for _, b := range s.Betriebe {
		status := entity.BetriebAktiv
		if b.Status != "" {
			status = entity.BetriebStatus(b.Status)
		}
		if err := sd.betriebe.Create(&entity.Betrieb{
			ID: b.ID, Name: b.Name, Email: b.Email, Telefon: b.Telefon, Adresse: b.Adresse,
			Status: status, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return betriebe, users, bedarfe, fmt.Errorf("betrieb %s: %w", b.Name, err)
		}
		betriebe++
	}

	for _, u := range s.Users {
		role, ok := entity.ParseRole(u.Role)
		if !ok {
			return betriebe, users, bedarfe, fmt.Errorf("usuario %s: rol desconocido %q", u.Email, u.Role)
		}
		if _, err := sd.authUC.RegisterUser(dto.RegisterRequest{
			Email: u.Email, Password: sd.password, Name: u.Name, Role: role, BetriebID: u.BetriebID,
		}); err != nil {
			return betriebe, users, bedarfe, fmt.Errorf("usuario %s: %w", u.Email, err)
		}
		users++
	}

	admin := &entity.Identity{ID: "seed", Role: entity.RoleAdmin}
	for _, b := range s.Bedarfe {
		in, err := b.request()
		if err != nil {
			return betriebe, users, bedarfe, fmt.Errorf("bedarf %s: %w", b.Titel, err)
		}
		created, err := sd.bedarfUC.Create(admin, in)
		if err != nil {
			return betriebe, users, bedarfe, fmt.Errorf("bedarf %s: %w", b.Titel, err)
		}
		if b.Status != "" && entity.BedarfStatus(b.Status) != created.Status {
			st := dto.BedarfStatusUpdate{Status: entity.BedarfStatus(b.Status)}
			if _, err := sd.bedarfUC.UpdateStatus(admin, created.ID, st); err != nil {
				return betriebe, users, bedarfe, fmt.Errorf("bedarf %s: %w", b.Titel, err)
			}
		}
		bedarfe++
	}
	return betriebe, users, bedarfe, nil
}

// request arma el payload con el mismo formulario que usan los clientes.
func (b seedBedarf) request() (dto.BedarfCreateRequest, error) {
	von, err := time.Parse(time.DateOnly, b.DatumVon)
	if err != nil {
		return dto.BedarfCreateRequest{}, fmt.Errorf("datumVon %q: %w", b.DatumVon, err)
	}
	bis, err := time.Parse(time.DateOnly, b.DatumBis)
	if err != nil {
		return dto.BedarfCreateRequest{}, fmt.Errorf("datumBis %q: %w", b.DatumBis, err)
	}
	form := forms.BedarfForm{
		Titel:            b.Titel,
		Beschreibung:     b.Beschreibung,
		Adresse:          b.Adresse,
		DatumVon:         von,
		DatumBis:         bis,
		StundenProTag:    b.StundenProTag,
		ZimmermannAnzahl: b.ZimmermannAnzahl,
		HolzbauAnzahl:    b.HolzbauAnzahl,
		MitWerkzeug:      b.MitWerkzeug,
		MitFahrzeug:      b.MitFahrzeug,
	}
	if b.Stundenlohn != "" {
		lohn, err := decimal.NewFromString(b.Stundenlohn)
		if err != nil {
			return dto.BedarfCreateRequest{}, fmt.Errorf("stundenlohn %q: %w", b.Stundenlohn, err)
		}
		form.Stundenlohn = &lohn
	}
	return form.CreateRequest(b.BetriebID), nil
}
