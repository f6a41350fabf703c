package statement

import "strings"

// DefaultTag is assigned when no rule matches.
const DefaultTag = "other"

// keywordRule maps a keyword group to a tag. Rules are evaluated top-down
// and the first group with any keyword present wins.
type keywordRule struct {
	keywords []string
	tag      string
}

// Category rules, tuned to Nubank statement wording. Order matters:
// an entry like "compra no débito - SUPERMERCADO" must hit the market
// group before any later rule gets a chance.
var categoryRules = []keywordRule{
	{[]string{"resgate rdb", "aplicação rdb", "investimento", "renda fixa"}, "other"},
	{[]string{"transferência", "pix", "ted", "doc", "crédito em conta"}, "transfer"},
	{[]string{"pagamento de fatura", "pagamento de boleto", "celesc", "receita federal", "município", "prefeitura"}, "other"},
	{[]string{"escola", "educacao", "estacio", "universidade", "curso"}, "study"},
	{[]string{"compra no débito", "supermercado", "mercado", "bistek", "padaria", "açougue"}, "market"},
	{[]string{"uber", "taxi", "ônibus", "metro", "combustível", "posto"}, "transport"},
	{[]string{"farmácia", "hospital", "médico", "clínica", "plano de saúde"}, "health"},
	{[]string{"restaurante", "lanchonete", "delivery", "ifood", "uber eats"}, "food"},
	{[]string{"cinema", "teatro", "show", "netflix", "spotify", "streaming"}, "entertainment"},
	{[]string{"papelaria", "escritório", "material", "office"}, "office"},
}

// Payment-method rules. PIX first: Nubank phrases transfers as
// "Transferência enviada pelo Pix", which must not fall through to transfer.
var paymentMethodRules = []keywordRule{
	{[]string{"pix"}, "pix"},
	{[]string{"compra no débito"}, "debit_card"},
	{[]string{"compra no crédito", "pagamento de fatura"}, "credit_card"},
	{[]string{"pagamento de boleto"}, "boleto"},
	{[]string{"transferência", "ted", "doc", "crédito em conta"}, "transfer"},
	{[]string{"resgate", "aplicação", "rdb"}, "transfer"},
}

func classify(rules []keywordRule, description string) string {
	desc := strings.ToLower(description)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.tag
			}
		}
	}
	return DefaultTag
}

// Categorize infers a category tag from the free-text description.
// It is a total function: every input maps to some tag.
func Categorize(description string) string {
	return classify(categoryRules, description)
}

// PaymentMethod infers a payment-method tag from the free-text description.
func PaymentMethod(description string) string {
	return classify(paymentMethodRules, description)
}
