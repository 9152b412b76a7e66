package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
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
	"github.com/marcelsud/bookstore-catalog/internal/http/chi"
	"github.com/marcelsud/bookstore-catalog/metrics"
)

const TIMEOUT = 30 * time.Second

/* “a porta de entrada e saída da minha aplicação”
* Porque a porta de entrada? É no arquivo main.go, que vai ser compilado para gerar o executável da aplicação,
* onde é feita toda a “amarração” dos demais pacotes.
* É nele onde iniciamos as dependências, fazemos as configurações e a invocação dos pacotes que desempenham a lógica de negócio.

* E porque ele é a porta de saída da aplicação?
* https://eltonminetto.dev/post/2022-07-06-error-handling-cli-applications-golang/
 */

/*
 * As importações devem ser feitas apenas em uma direção: para baixo. O aplicativo (api, seed) importa camadas de negócios,
 * que importam a camada de armazenamento
 */

type repositories struct {
	authors     author.Repository
	categories  category.Repository
	books       book.Repository
	collections map[string]metrics.RecordCounter
}

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repos, err := buildRepositories(ctx, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer repos.authors.Close(ctx)
	defer repos.categories.Close(ctx)
	defer repos.books.Close(ctx)

	authorService := author.NewService(repos.authors)
	categoryService := category.NewService(repos.categories)
	bookService := book.NewService(repos.books, repos.authors, repos.categories)

	exporter, err := metrics.NewOTelExporter(repos.collections)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(ctx)

	logger := httplog.NewLogger("bookstore-catalog", httplog.Options{
		JSON: true,
	})
	r, err := chi.Handlers(logger, exporter, authorService, categoryService, bookService)
	if err != nil {
		fmt.Println(err)
		return
	}
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func buildRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		authors, err := authorpostgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		categories, err := categorypostgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		books, err := bookpostgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		for _, schema := range []interface {
			EnsureSchema(context.Context) error
		}{authors, categories, books} {
			if err := schema.EnsureSchema(ctx); err != nil {
				return nil, err
			}
		}
		return &repositories{
			authors:    authors,
			categories: categories,
			books:      books,
			collections: map[string]metrics.RecordCounter{
				"author":   authors,
				"category": categories,
				"book":     books,
			},
		}, nil
	default:
		authors, err := authorredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		categories, err := categoryredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		books, err := bookredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return &repositories{
			authors:    authors,
			categories: categories,
			books:      books,
			collections: map[string]metrics.RecordCounter{
				"author":   authors,
				"category": categories,
				"book":     books,
			},
		}, nil
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
