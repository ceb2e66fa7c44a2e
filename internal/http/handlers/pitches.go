package handlers

import (
	"net/http"

	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/pitch"
)

func ListPitchesHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.GetPitches())
	}
}

func GetPitchHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := service.GetPitch(r.PathValue("id"))
		if !ok {
			http.Error(w, "pitch not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func CreatePitchHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in pitch.Pitch
		if !readJSON(w, r, &in) {
			return
		}
		if in.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, service.AddPitch(in))
	}
}

func UpdatePitchHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update pitch.PitchUpdate
		if !readJSON(w, r, &update) {
			return
		}
		p, ok := service.UpdatePitch(r.PathValue("id"), update)
		if !ok {
			http.Error(w, "pitch not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func DeletePitchHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !service.DeletePitch(r.PathValue("id")) {
			http.Error(w, "pitch not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
