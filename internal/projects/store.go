package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seguimiento_proyectos/internal/models"
)

const bridgeTable = "servicio_comunitario_estudiantes"

var (
	ErrNotFound     = errors.New("proyecto no encontrado")
	ErrInvalidInput = errors.New("datos inválidos")
)

// Input is the create/update payload. Estudiantes is used by community
// service, IDEstudiante by every other kind, Empresa only by internships.
type Input struct {
	NombreProyecto string  `json:"nombre_proyecto"`
	IDCarrera      int64   `json:"id_carrera"`
	IDPeriodo      int64   `json:"id_periodo"`
	IDTutor        *int64  `json:"id_tutor"`
	IDEstudiante   int64   `json:"id_estudiante"`
	Estudiantes    []int64 `json:"estudiantes"`
	Empresa        string  `json:"empresa"`
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns the active (not deleted) projects of a kind.
func (s *Store) List(ctx context.Context, k Kind) ([]Summary, error) {
	return s.fetch(s.query(ctx, k, false), k)
}

func (s *Store) ListDeleted(ctx context.Context, k Kind) ([]Summary, error) {
	return s.fetch(s.query(ctx, k, true), k)
}

// ListAllDeleted merges the deleted projects of every kind.
func (s *Store) ListAllDeleted(ctx context.Context) ([]Summary, error) {
	out := []Summary{}
	for _, k := range Kinds {
		rows, err := s.ListDeleted(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k.Slug, err)
		}
		out = append(out, rows...)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, k Kind, id int64) (Summary, error) {
	rows, err := s.fetch(s.query(ctx, k, false).Where("id = ?", id), k)
	if err != nil {
		return Summary{}, err
	}
	if len(rows) == 0 {
		return Summary{}, ErrNotFound
	}
	return rows[0], nil
}

func (s *Store) Count(ctx context.Context, k Kind) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Table(k.Table).Where(k.Flag+" = ?", false).Count(&n).Error
	return n, err
}

func (s *Store) Create(ctx context.Context, k Kind, in Input) (int64, error) {
	if err := s.validate(ctx, k, &in); err != nil {
		return 0, err
	}

	var id int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch k.Table {
		case ServicioComunitario.Table:
			p := models.ServicioComunitario{
				NombreProyecto: in.NombreProyecto,
				IDCarrera:      in.IDCarrera,
				IDPeriodo:      in.IDPeriodo,
				IDTutor:        in.IDTutor,
			}
			if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
				return err
			}
			id = p.ID
			return linkEstudiantes(tx, p.ID, in.Estudiantes)
		case TrabajoDeGrado.Table:
			p := models.TrabajoDeGrado{
				NombreProyecto: in.NombreProyecto,
				IDCarrera:      in.IDCarrera,
				IDPeriodo:      in.IDPeriodo,
				IDTutor:        in.IDTutor,
				IDEstudiante:   in.IDEstudiante,
			}
			if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
				return err
			}
			id = p.ID
		case ProyectoInvestigacion.Table:
			p := models.ProyectoInvestigacion{
				NombreProyecto: in.NombreProyecto,
				IDCarrera:      in.IDCarrera,
				IDPeriodo:      in.IDPeriodo,
				IDTutor:        in.IDTutor,
				IDEstudiante:   in.IDEstudiante,
			}
			if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
				return err
			}
			id = p.ID
		case Pasantia.Table:
			p := models.Pasantia{
				NombreProyecto: in.NombreProyecto,
				Empresa:        in.Empresa,
				IDCarrera:      in.IDCarrera,
				IDPeriodo:      in.IDPeriodo,
				IDTutor:        in.IDTutor,
				IDEstudiante:   in.IDEstudiante,
			}
			if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
				return err
			}
			id = p.ID
		default:
			return fmt.Errorf("unknown project kind %q", k.Slug)
		}
		return nil
	})
	return id, err
}

// Update rewrites an active project. Deleted projects must be restored first.
func (s *Store) Update(ctx context.Context, k Kind, id int64, in Input) error {
	if err := s.validate(ctx, k, &in); err != nil {
		return err
	}

	fields := map[string]any{
		"nombre_proyecto": in.NombreProyecto,
		"id_carrera":      in.IDCarrera,
		"id_periodo":      in.IDPeriodo,
		"id_tutor":        in.IDTutor,
		"updated_at":      time.Now(),
	}
	if !k.Multiple {
		fields["id_estudiante"] = in.IDEstudiante
	}
	if k.Empresa {
		fields["empresa"] = in.Empresa
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(k.Table).Where("id = ? AND "+k.Flag+" = ?", id, false).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if !k.Multiple {
			return nil
		}
		if err := tx.Exec("DELETE FROM "+bridgeTable+" WHERE servicio_comunitario_id = ?", id).Error; err != nil {
			return err
		}
		return linkEstudiantes(tx, id, in.Estudiantes)
	})
}

// SoftDelete flags an active project as deleted with an optional reason.
func (s *Store) SoftDelete(ctx context.Context, k Kind, id int64, mensaje string) error {
	res := s.db.WithContext(ctx).Table(k.Table).
		Where("id = ? AND "+k.Flag+" = ?", id, false).
		Updates(map[string]any{
			k.Flag:                true,
			"mensaje_eliminacion": nullable(mensaje),
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore clears the flag and the elimination message in a single UPDATE so
// a restored row never keeps its elimination message.
func (s *Store) Restore(ctx context.Context, k Kind, id int64, mensaje string) error {
	res := s.db.WithContext(ctx).Table(k.Table).
		Where("id = ? AND "+k.Flag+" = ?", id, true).
		Updates(map[string]any{
			k.Flag:                 false,
			"mensaje_eliminacion":  nil,
			"mensaje_restauracion": nullable(mensaje),
			"updated_at":           time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// StudentInUse reports whether any project, deleted or not, references the student.
func (s *Store) StudentInUse(ctx context.Context, estudianteID int64) (bool, error) {
	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Table(bridgeTable).Where("estudiante_id = ?", estudianteID).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	for _, k := range Kinds {
		if k.Multiple {
			continue
		}
		if err := db.Table(k.Table).Where("id_estudiante = ?", estudianteID).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) query(ctx context.Context, k Kind, deleted bool) *gorm.DB {
	q := s.db.WithContext(ctx).
		Preload("Carrera").
		Preload("Periodo").
		Preload("Tutor").
		Where(k.Flag+" = ?", deleted).
		Order("id ASC")
	if k.Multiple {
		return q.Preload("Estudiantes", func(db *gorm.DB) *gorm.DB {
			return db.Order("apellido ASC")
		})
	}
	return q.Preload("Estudiante")
}

func (s *Store) fetch(q *gorm.DB, k Kind) ([]Summary, error) {
	switch k.Table {
	case ServicioComunitario.Table:
		return load(q, summarizeServicio)
	case TrabajoDeGrado.Table:
		return load(q, summarizeGrado)
	case ProyectoInvestigacion.Table:
		return load(q, summarizeInvestigacion)
	case Pasantia.Table:
		return load(q, summarizePasantia)
	}
	return nil, fmt.Errorf("unknown project kind %q", k.Slug)
}

func load[T any](q *gorm.DB, summarize func(*T) Summary) ([]Summary, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(rows))
	for i := range rows {
		out = append(out, summarize(&rows[i]))
	}
	return out, nil
}

func (s *Store) validate(ctx context.Context, k Kind, in *Input) error {
	in.NombreProyecto = strings.TrimSpace(in.NombreProyecto)
	in.Empresa = strings.TrimSpace(in.Empresa)
	if in.IDTutor != nil && *in.IDTutor <= 0 {
		in.IDTutor = nil
	}

	if in.NombreProyecto == "" {
		return invalid("nombre_proyecto es obligatorio")
	}
	if in.IDCarrera <= 0 {
		return invalid("id_carrera es obligatorio")
	}
	if in.IDPeriodo <= 0 {
		return invalid("id_periodo es obligatorio")
	}

	db := s.db.WithContext(ctx)
	if err := mustExist(db, &models.Carrera{}, in.IDCarrera, "la carrera no existe"); err != nil {
		return err
	}
	if err := mustExist(db, &models.Periodo{}, in.IDPeriodo, "el periodo no existe"); err != nil {
		return err
	}
	if in.IDTutor != nil {
		if err := mustExist(db, &models.Tutor{}, *in.IDTutor, "el tutor no existe"); err != nil {
			return err
		}
	}

	if !k.Multiple {
		if in.IDEstudiante <= 0 {
			return invalid("id_estudiante es obligatorio")
		}
		return mustExist(db, &models.Estudiante{}, in.IDEstudiante, "el estudiante no existe")
	}

	ids := dedupe(in.Estudiantes)
	if len(ids) == 0 {
		return invalid("debe indicar al menos un estudiante")
	}
	var n int64
	if err := db.Model(&models.Estudiante{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return invalid("uno o más estudiantes no existen")
	}
	in.Estudiantes = ids
	return nil
}

func linkEstudiantes(tx *gorm.DB, proyectoID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]any{
			"servicio_comunitario_id": proyectoID,
			"estudiante_id":           id,
		})
	}
	return tx.Table(bridgeTable).Create(rows).Error
}

func mustExist(db *gorm.DB, model any, id int64, msg string) error {
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return invalid(msg)
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
