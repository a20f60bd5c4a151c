package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/AtlasTurismo/api-caixa/internal/auth"
	"github.com/AtlasTurismo/api-caixa/internal/cliente"
	"github.com/AtlasTurismo/api-caixa/internal/fornecedor"
	"github.com/AtlasTurismo/api-caixa/internal/relatorio"
	"github.com/AtlasTurismo/api-caixa/internal/transacao"
	"github.com/AtlasTurismo/api-caixa/internal/usuario"
	"github.com/AtlasTurismo/api-caixa/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	conn, err := db.GetDB()
	if err != nil {
		log.Fatal().Err(err).Msg("erro ao conectar no banco")
	}

	// AutoMigrate para todos os modelos
	if err := conn.AutoMigrate(
		&usuario.Usuario{},
		&cliente.Cliente{},
		&fornecedor.Fornecedor{},
		&transacao.Transacao{},
		&auth.RefreshToken{},
	); err != nil {
		log.Fatal().Err(err).Msg("erro no AutoMigrate")
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(conn, log)
	clienteHandler := cliente.NewHandler(conn)
	fornecedorHandler := fornecedor.NewHandler(conn)
	transacaoHandler := transacao.NewHandler(conn, log)
	relatorioHandler := relatorio.NewHandler(conn)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/usuarios", usuarioHandler.Create).Methods("POST")
	r.HandleFunc("/usuarios/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(conn)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(conn)).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Usuários
	api.HandleFunc("/usuarios", usuarioHandler.List).Methods("GET")
	api.HandleFunc("/usuarios/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.GetByID).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Update).Methods("PUT")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Delete).Methods("DELETE")

	// Clientes
	api.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	api.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/clientes/{id}", clienteHandler.Deletar).Methods("DELETE")

	// Fornecedores
	api.HandleFunc("/fornecedores", fornecedorHandler.Criar).Methods("POST")
	api.HandleFunc("/fornecedores", fornecedorHandler.Listar).Methods("GET")
	api.HandleFunc("/fornecedores/{id}", fornecedorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/fornecedores/{id}", fornecedorHandler.Atualizar).Methods("PUT")
	api.Handle("/fornecedores/{id}",
		auth.RequireAdmin(http.HandlerFunc(fornecedorHandler.Deletar))).Methods("DELETE")

	// Transações (entradas, saídas e despesas geradas)
	api.HandleFunc("/transacoes", transacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/transacoes", transacaoHandler.Listar).Methods("GET")
	api.HandleFunc("/transacoes/{id}", transacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/transacoes/{id}", transacaoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/transacoes/{id}", transacaoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/transacoes/{id}/gerar-despesas", transacaoHandler.GerarDespesas).Methods("POST")

	// Relatórios
	api.HandleFunc("/relatorios/resumo", relatorioHandler.Resumo).Methods("GET")
	api.HandleFunc("/relatorios/por-categoria", relatorioHandler.PorCategoria).Methods("GET")

	// CORS
	origins := []string{"*"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	log.Info().Str("porta", porta).Msg("servidor rodando")
	if err := http.ListenAndServe(":"+porta, c.Handler(r)); err != nil {
		log.Fatal().Err(err).Msg("servidor encerrou com erro")
	}
}
