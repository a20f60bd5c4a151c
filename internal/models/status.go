package models

// Convenção de status textual para pagamentos (linhas de fornecedor e comissão)
const (
	StatusPendente = "Pendente"
	StatusPago     = "Pago"
)

// Tipos de transação
const (
	TipoEntrada = "entrada"
	TipoSaida   = "saida"
)

// Categorias fixas das despesas geradas automaticamente
const (
	CategoriaPagamentoFornecedor = "Pagamento a Fornecedor"
	CategoriaComissaoVendedor    = "Comissão de Vendedor"
)
