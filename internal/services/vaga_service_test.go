package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/domain/vaga"
)

func TestVagaService_Create(t *testing.T) {
	env := newTestEnv(t)
	svc := NewVagaService(env.vagas, env.users, env.log)
	employer := env.user(t, user.RoleEmpregador, "obra")
	worker := env.user(t, user.RolePrestador, "pedreiro")

	t.Run("default etapas", func(t *testing.T) {
		v, err := svc.Create(context.Background(), employer.ID, vaga.Input{
			Title:       "  Pedreiro ",
			Description: "Obra residencial",
			State:       "mg",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if v.Title != "Pedreiro" || v.State != "MG" {
			t.Errorf("Create() = %q/%q", v.Title, v.State)
		}
		if v.Status != vaga.StatusAberta || v.SalaryType != vaga.SalaryACombinar {
			t.Errorf("status/salary = %s/%s", v.Status, v.SalaryType)
		}

		got, err := svc.Get(context.Background(), v.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.Etapas) != len(vaga.DefaultEtapas) {
			t.Fatalf("etapas = %d, want %d", len(got.Etapas), len(vaga.DefaultEtapas))
		}
		for i, e := range got.Etapas {
			if e.Name != vaga.DefaultEtapas[i] {
				t.Errorf("etapa[%d] = %s, want %s", i, e.Name, vaga.DefaultEtapas[i])
			}
		}
	})

	tests := []struct {
		name   string
		userID string
		in     vaga.Input
		status int
	}{
		{
			name:   "worker cannot post",
			userID: worker.ID,
			in:     vaga.Input{Title: "x", Description: "y"},
			status: http.StatusForbidden,
		},
		{
			name:   "missing title",
			userID: employer.ID,
			in:     vaga.Input{Description: "y"},
			status: http.StatusBadRequest,
		},
		{
			name:   "fixed salary without amount",
			userID: employer.ID,
			in:     vaga.Input{Title: "x", Description: "y", SalaryType: vaga.SalaryFixo},
			status: http.StatusBadRequest,
		},
		{
			name:   "blank etapa",
			userID: employer.ID,
			in:     vaga.Input{Title: "x", Description: "y", Etapas: []string{"Triagem", " "}},
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.userID, tt.in)
			if err == nil {
				t.Fatal("Create() expected error")
			}
			if got := statusOf(t, err); got != tt.status {
				t.Errorf("status = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestVagaService_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := NewVagaService(env.vagas, env.users, env.log)
	owner := env.user(t, user.RoleEmpregador, "dona")
	other := env.user(t, user.RoleEmpregador, "vizinha")
	v := env.vaga(t, owner, "Cozinheira")

	_, err := svc.Update(context.Background(), other.ID, v.ID, vaga.Input{Title: "Outra", Description: "z"})
	if statusOf(t, err) != http.StatusForbidden {
		t.Errorf("Update() by stranger status = %d, want 403", statusOf(t, err))
	}
	_, err = svc.SetStatus(context.Background(), other.ID, v.ID, vaga.StatusFechada)
	if statusOf(t, err) != http.StatusForbidden {
		t.Errorf("SetStatus() by stranger status = %d, want 403", statusOf(t, err))
	}

	updated, err := svc.Update(context.Background(), owner.ID, v.ID, vaga.Input{
		Title:       "Cozinheira de forno",
		Description: "Restaurante",
		SalaryType:  vaga.SalaryFixo,
		SalaryCents: int64Ptr(250000),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Cozinheira de forno" || updated.SalaryCents == nil || *updated.SalaryCents != 250000 {
		t.Errorf("Update() = %+v", updated)
	}
	if len(updated.Etapas) != len(vaga.DefaultEtapas) {
		t.Errorf("Update() without etapas dropped stages: %d", len(updated.Etapas))
	}
}

func TestVagaService_ListOpenBoostedFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := NewVagaService(env.vagas, env.users, env.log)
	employer := env.user(t, user.RoleEmpregador, "mercado")

	plain := env.vaga(t, employer, "Repositor")
	boosted := env.vaga(t, employer, "Caixa")
	closed := env.vaga(t, employer, "Açougueiro")

	now := time.Now()
	if err := env.vagas.MarkBoosted(context.Background(), boosted.ID, now.AddDate(0, 0, 7), now); err != nil {
		t.Fatalf("MarkBoosted() error = %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), employer.ID, closed.ID, vaga.StatusFechada); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	page, err := svc.List(context.Background(), vaga.Filter{}, 20, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("List() total = %d items = %d, want 2", page.Total, len(page.Items))
	}
	if page.Items[0].ID != boosted.ID || page.Items[1].ID != plain.ID {
		t.Errorf("List() order = %s, %s", page.Items[0].Title, page.Items[1].Title)
	}

	mine, err := svc.ListMine(context.Background(), employer.ID)
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(mine) != 3 {
		t.Errorf("ListMine() = %d, want 3", len(mine))
	}
}

func TestCandidaturaService_Apply(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCandidaturaService(env.candidaturas, env.vagas, env.users, env.notifier, env.log)
	vagas := NewVagaService(env.vagas, env.users, env.log)
	employer := env.user(t, user.RoleEmpregador, "hotel")
	worker := env.user(t, user.RolePrestador, "camareira")
	v := env.vaga(t, employer, "Camareira")

	c, err := svc.Apply(context.Background(), worker.ID, v.ID, "  Tenho experiência  ")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if c.Status != vaga.CandidaturaPendente || c.Message != "Tenho experiência" {
		t.Errorf("Apply() = %+v", c)
	}

	sent := env.mailer.Sent()
	if len(sent) != 1 || sent[0].To != employer.Email {
		t.Errorf("employer notices = %+v", sent)
	}

	_, err = svc.Apply(context.Background(), worker.ID, v.ID, "")
	if statusOf(t, err) != http.StatusConflict {
		t.Errorf("second Apply() status = %d, want 409", statusOf(t, err))
	}

	_, err = svc.Apply(context.Background(), employer.ID, v.ID, "")
	if statusOf(t, err) != http.StatusForbidden {
		t.Errorf("Apply() by employer status = %d, want 403", statusOf(t, err))
	}

	paused := env.vaga(t, employer, "Recepcionista")
	if _, err := vagas.SetStatus(context.Background(), employer.ID, paused.ID, vaga.StatusPausada); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	_, err = svc.Apply(context.Background(), worker.ID, paused.ID, "")
	if statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Apply() to paused vaga status = %d, want 400", statusOf(t, err))
	}

	mine, err := svc.ListMine(context.Background(), worker.ID)
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(mine) != 1 || mine[0].VagaTitle != "Camareira" {
		t.Errorf("ListMine() = %+v", mine)
	}
}

func TestCandidaturaService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCandidaturaService(env.candidaturas, env.vagas, env.users, env.notifier, env.log)
	employer := env.user(t, user.RoleEmpregador, "escola")
	other := env.user(t, user.RoleEmpregador, "creche")
	worker := env.user(t, user.RolePrestador, "professora")
	v := env.vaga(t, employer, "Professora")

	c, err := svc.Apply(context.Background(), worker.ID, v.ID, "")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if _, err := svc.ListForVaga(context.Background(), other.ID, v.ID); statusOf(t, err) != http.StatusForbidden {
		t.Errorf("ListForVaga() by stranger status = %d, want 403", statusOf(t, err))
	}
	if _, err := svc.UpdateStatus(context.Background(), other.ID, c.ID, vaga.CandidaturaEntrevista); statusOf(t, err) != http.StatusForbidden {
		t.Errorf("UpdateStatus() by stranger status = %d, want 403", statusOf(t, err))
	}

	steps := []struct {
		to     vaga.CandidaturaStatus
		status int
	}{
		{to: vaga.CandidaturaEntrevista, status: http.StatusOK},
		{to: vaga.CandidaturaEmAvaliacao, status: http.StatusBadRequest},
		{to: vaga.CandidaturaEntrevista, status: http.StatusOK},
		{to: vaga.CandidaturaRecusada, status: http.StatusOK},
		{to: vaga.CandidaturaFinalista, status: http.StatusBadRequest},
		{to: "CONTRATADA", status: http.StatusBadRequest},
	}
	for _, step := range steps {
		got, err := svc.UpdateStatus(context.Background(), employer.ID, c.ID, step.to)
		if step.status == http.StatusOK {
			if err != nil {
				t.Fatalf("UpdateStatus(%s) error = %v", step.to, err)
			}
			if got.Status != step.to {
				t.Errorf("UpdateStatus(%s) = %s", step.to, got.Status)
			}
			continue
		}
		if err == nil || statusOf(t, err) != step.status {
			t.Errorf("UpdateStatus(%s) error = %v, want %d", step.to, err, step.status)
		}
	}

	list, err := svc.ListForVaga(context.Background(), employer.ID, v.ID)
	if err != nil {
		t.Fatalf("ListForVaga() error = %v", err)
	}
	if len(list) != 1 || list[0].Status != vaga.CandidaturaRecusada || list[0].PrestadorName != "professora" {
		t.Errorf("ListForVaga() = %+v", list)
	}
}

func TestFavoritaService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFavoritaService(env.favoritas, env.vagas)
	employer := env.user(t, user.RoleEmpregador, "fazenda")
	worker := env.user(t, user.RolePrestador, "caseiro")
	v := env.vaga(t, employer, "Caseiro")

	for i := 0; i < 2; i++ {
		if err := svc.Add(context.Background(), worker.ID, v.ID); err != nil {
			t.Fatalf("Add() #%d error = %v", i+1, err)
		}
	}
	saved, err := svc.List(context.Background(), worker.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(saved) != 1 || saved[0].ID != v.ID {
		t.Errorf("List() = %+v", saved)
	}

	if err := svc.Add(context.Background(), worker.ID, "00000000-0000-0000-0000-000000000000"); statusOf(t, err) != http.StatusNotFound {
		t.Errorf("Add() missing vaga status = %d, want 404", statusOf(t, err))
	}

	if err := svc.Remove(context.Background(), worker.ID, v.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	saved, _ = svc.List(context.Background(), worker.ID)
	if len(saved) != 0 {
		t.Errorf("List() after Remove = %d", len(saved))
	}
}
