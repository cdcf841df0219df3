package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailOmitsData(t *testing.T) {
	b, err := json.Marshal(Fail("Erro ao processar webhook", "Plano não reconhecido: X"))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":false,"error":"Erro ao processar webhook","message":"Plano não reconhecido: X"}`, string(b))
}

func TestOKMessage(t *testing.T) {
	b, err := json.Marshal(OKMessage("Webhook processado com sucesso", map[string]int{"n": 1}))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"message":"Webhook processado com sucesso","data":{"n":1}}`, string(b))
}
