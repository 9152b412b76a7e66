package main

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelsud/bookstore-catalog/author"
	authorpostgres "github.com/marcelsud/bookstore-catalog/author/postgres"
	authorredis "github.com/marcelsud/bookstore-catalog/author/redis"
	"github.com/marcelsud/bookstore-catalog/book"
	bookpostgres "github.com/marcelsud/bookstore-catalog/book/postgres"
	bookredis "github.com/marcelsud/bookstore-catalog/book/redis"
	"github.com/marcelsud/bookstore-catalog/category"
	categorypostgres "github.com/marcelsud/bookstore-catalog/category/postgres"
	categoryredis "github.com/marcelsud/bookstore-catalog/category/redis"
	"github.com/marcelsud/bookstore-catalog/config"
	"gopkg.in/yaml.v3"
)

/* seed - carrega o catálogo a partir de um arquivo YAML.
 * Usage: go run cmd/seed/main.go [seed.yaml]
 *
 * Os registros passam pelos serviços, então as mesmas validações da API
 * se aplicam. Livros referenciam autores e categorias pelo nome, que é
 * resolvido para o id criado nesta execução.
 */

type fixtures struct {
	Authors []struct {
		Name      string `yaml:"name"`
		Biography string `yaml:"biography"`
	} `yaml:"authors"`
	Categories []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
	Books []struct {
		Title    string `yaml:"title"`
		Author   string `yaml:"author"`
		Category string `yaml:"category"`
		Year     int    `yaml:"year"`
	} `yaml:"books"`
}

func main() {
	seedFile := "seed.yaml"
	if len(os.Args) > 1 {
		seedFile = os.Args[1]
	}
	data, err := os.ReadFile(seedFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	var f fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		fmt.Printf("parsing %s: %v\n", seedFile, err)
		os.Exit(1)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	ctx := context.Background()

	authorRepo, categoryRepo, bookRepo, err := buildRepositories(ctx, cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer authorRepo.Close(ctx)
	defer categoryRepo.Close(ctx)
	defer bookRepo.Close(ctx)

	authorService := author.NewService(authorRepo)
	categoryService := category.NewService(categoryRepo)
	bookService := book.NewService(bookRepo, authorRepo, categoryRepo)

	authorIDs := map[string]string{}
	for _, a := range f.Authors {
		created, err := authorService.Create(ctx, a.Name, a.Biography)
		if err != nil {
			fmt.Printf("author %q: %v\n", a.Name, err)
			os.Exit(1)
		}
		authorIDs[a.Name] = created.ID
		fmt.Printf("author %s: %s\n", created.ID, created.Name)
	}

	categoryIDs := map[string]string{}
	for _, c := range f.Categories {
		created, err := categoryService.Create(ctx, c.Name, c.Description)
		if err != nil {
			fmt.Printf("category %q: %v\n", c.Name, err)
			os.Exit(1)
		}
		categoryIDs[c.Name] = created.ID
		fmt.Printf("category %s: %s\n", created.ID, created.Name)
	}

	for _, b := range f.Books {
		authorID, ok := authorIDs[b.Author]
		if !ok {
			fmt.Printf("book %q references unknown author %q\n", b.Title, b.Author)
			os.Exit(1)
		}
		categoryID, ok := categoryIDs[b.Category]
		if !ok {
			fmt.Printf("book %q references unknown category %q\n", b.Title, b.Category)
			os.Exit(1)
		}
		year := b.Year
		created, err := bookService.Create(ctx, book.CreateInput{
			Title:      b.Title,
			AuthorID:   authorID,
			CategoryID: categoryID,
			Year:       &year,
		})
		if err != nil {
			fmt.Printf("book %q: %v\n", b.Title, err)
			os.Exit(1)
		}
		fmt.Printf("book %s: %s\n", created.ID, created.Title)
	}
}

func buildRepositories(ctx context.Context, cfg *config.Config) (author.Repository, category.Repository, book.Repository, error) {
	if cfg.Storage == config.StoragePostgres {
		authors, err := authorpostgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		categories, err := categorypostgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		books, err := bookpostgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, schema := range []interface {
			EnsureSchema(context.Context) error
		}{authors, categories, books} {
			if err := schema.EnsureSchema(ctx); err != nil {
				return nil, nil, nil, err
			}
		}
		return authors, categories, books, nil
	}
	authors, err := authorredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, nil, err
	}
	categories, err := categoryredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, nil, err
	}
	books, err := bookredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, nil, err
	}
	return authors, categories, books, nil
}
