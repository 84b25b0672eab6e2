package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/verifying"
	"github.com/vfg2006/ppc-optimizer-api/pkg/apiErrors"
)

// RunVerification executa as checagens de pré-voo sob demanda, sem disparar
// um run de otimização. Útil para validar configuração e conectividade antes
// de habilitar o agendamento.
func RunVerification(verifier *verifying.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := verifier.Run(r.Context(), nil)
		if err != nil {
			logrus.WithError(err).Warn("Verificação de pré-voo reprovada")

			apiErrors.WriteError(w, apiErrors.ErrVerificationFailed, err.Error(), report)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}
