package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/planejei/api/internal/categoria"
	"github.com/planejei/api/internal/db"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	ctx := context.Background()

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if dsn == "" {
		log.Fatal().Msg("defina DB_DSN ou DATABASE_URL")
	}

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("não foi possível conectar ao banco")
	}
	defer pool.Close()

	repo := categoria.NewRepository(pool)
	service := categoria.NewService(repo, nil, 0)

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "create":
		if err := runCreate(ctx, service, args); err != nil {
			log.Fatal().Err(err).Msg("falha ao criar categoria")
		}
	case "ensure":
		if err := runEnsure(ctx, service, args); err != nil {
			log.Fatal().Err(err).Msg("falha ao resolver categoria")
		}
	case "list":
		if err := runList(ctx, service, args); err != nil {
			log.Fatal().Err(err).Msg("falha ao listar categorias")
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "categoria CLI")
	fmt.Fprintln(os.Stderr, "uso:")
	fmt.Fprintln(os.Stderr, "  categoria create --nome \"Contas\" --cor \"#EF4444\" [--descricao texto] [--tenant uuid]")
	fmt.Fprintln(os.Stderr, "  categoria ensure --nome \"Contas\" [--tenant uuid]")
	fmt.Fprintln(os.Stderr, "  categoria list [--tenant uuid]")
}

func parseTenant(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("tenant inválido: %w", err)
	}
	return &id, nil
}

func runCreate(ctx context.Context, service *categoria.Service, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		nome      = fs.String("nome", "", "nome da categoria")
		cor       = fs.String("cor", "", "cor em hexadecimal (ex.: #EF4444)")
		descricao = fs.String("descricao", "", "descrição opcional")
		tenant    = fs.String("tenant", "", "uuid do tenant (vazio = global)")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *nome == "" || *cor == "" {
		return errors.New("nome e cor são obrigatórios")
	}

	tenantID, err := parseTenant(*tenant)
	if err != nil {
		return err
	}

	input := categoria.CriarCategoriaInput{Nome: *nome, Cor: *cor}
	if strings.TrimSpace(*descricao) != "" {
		input.Descricao = descricao
	}

	criada, err := service.Criar(ctx, input, tenantID)
	if err != nil {
		return err
	}

	output, _ := json.MarshalIndent(criada, "", "  ")
	fmt.Println(string(output))
	return nil
}

func runEnsure(ctx context.Context, service *categoria.Service, args []string) error {
	fs := flag.NewFlagSet("ensure", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		nome   = fs.String("nome", "", "nome da categoria")
		tenant = fs.String("tenant", "", "uuid do tenant (vazio = global)")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	tenantID, err := parseTenant(*tenant)
	if err != nil {
		return err
	}

	id, err := service.FindOrCreateByNome(ctx, *nome, tenantID)
	if err != nil {
		return err
	}

	fmt.Println(id.String())
	return nil
}

func runList(ctx context.Context, service *categoria.Service, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	tenant := fs.String("tenant", "", "uuid do tenant (vazio = todas)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	tenantID, err := parseTenant(*tenant)
	if err != nil {
		return err
	}

	categorias, err := service.ListarTodas(ctx, tenantID)
	if err != nil {
		return err
	}

	if len(categorias) == 0 {
		fmt.Println("nenhuma categoria cadastrada")
		return nil
	}

	encoded, _ := json.MarshalIndent(categorias, "", "  ")
	fmt.Println(string(encoded))
	return nil
}
