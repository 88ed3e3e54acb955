package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/tabscore/constants"
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/pattern"
	"github.com/jsphweid/tabscore/rhythm"
	"github.com/jsphweid/tabscore/score"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var port int

// request bodies are limited to this many bytes
const maxBodyBytes = 1 << 20

func init() {
	serveCmd.Flags().IntVar(&port, "port", constants.GetPort(), "port to listen on")
	serveCmd.Flags().IntVar(&maxDepth, "max-depth", constants.GetMaxDepth(), "maximum score nesting depth")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the compilers over HTTP",
	Long: `Serves POST /compile (score document body), POST /rhythm and
POST /pattern (JSON {"input": ...}) and GET /health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf(":%d", port)
		slog.Info("listening", "addr", addr)
		return http.ListenAndServe(addr, cors.Default().Handler(NewRouter()))
	},
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/health", HandleHealth).Methods("GET")
	router.HandleFunc("/compile", HandleCompile).Methods("POST")
	router.HandleFunc("/rhythm", HandleRhythm).Methods("POST")
	router.HandleFunc("/pattern", HandlePattern).Methods("POST")
	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("could not encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	slog.Debug("request failed", "error", err)
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error: err.Error(),
		Kind:  model.KindOf(err).String(),
	})
}

func readInput(w http.ResponseWriter, r *http.Request) (string, error) {
	var body model.InputRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("could not decode request body: %w", err)
	}
	return body.Input, nil
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func HandleCompile(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	s, err := CompileScore(data, score.Config{MaxDepth: maxDepth})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CompileResponse{ID: uuid.NewString(), Score: s})
}

func HandleRhythm(w http.ResponseWriter, r *http.Request) {
	input, err := readInput(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := rhythm.Compile(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandlePattern(w http.ResponseWriter, r *http.Request) {
	input, err := readInput(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	runs, err := pattern.Compile(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PatternResponse{Runs: runs})
}
