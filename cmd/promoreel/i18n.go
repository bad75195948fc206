// Package main provides localization for the promoreel CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register French translations for CLI messages.
	l10n.Register("fr", l10n.LexiconMap{
		// Root command
		"Create vertical marketing clips from a product catalog.": "Créer des clips marketing verticaux à partir d'un catalogue produit.",

		// Render command
		"Render product clips from a CSV catalog.": "Générer les clips produits à partir d'un catalogue CSV.",

		// Serve command
		"Run the HTTP API server.": "Lancer le serveur d'API HTTP.",

		// Version command
		"Show version information.": "Afficher les informations de version.",
		"promoreel version %s":      "promoreel version %s",

		// Flags
		"CSV catalog file path.":                                  "Chemin du fichier catalogue CSV.",
		"Output directory for clips and captions.":                "Répertoire de sortie des clips et légendes.",
		"Render the built-in sample catalog instead of a CSV file.": "Générer le catalogue d'exemple intégré au lieu d'un fichier CSV.",
		"YAML configuration file path.":                           "Chemin du fichier de configuration YAML.",
		"Frames per second (default: 30).":                        "Images par seconde (défaut : 30).",
		"Clip duration in seconds (default: 10).":                 "Durée du clip en secondes (défaut : 10).",
		"Capture codec (mjpeg or h264).":                          "Codec de capture (mjpeg ou h264).",
		"Encoding quality (JPEG quality or H.264 CRF).":           "Qualité d'encodage (qualité JPEG ou CRF H.264).",
		"Transcode clips to H.264 MP4 with ffmpeg.":               "Transcoder les clips en MP4 H.264 avec ffmpeg.",
		"Enable debug output.":                                    "Activer la sortie de débogage.",
		"Directory for debug output.":                             "Répertoire de la sortie de débogage.",
		"Log level (debug, info, warn, error).":                   "Niveau de journalisation (debug, info, warn, error).",
		"Suppress all log output.":                                "Supprimer toute sortie de journal.",
		"Listen address for the HTTP API.":                        "Adresse d'écoute de l'API HTTP.",

		// Runtime messages
		"a catalog file or --sample is required": "un fichier catalogue ou --sample est requis",
		"no clip could be rendered":              "aucun clip n'a pu être généré",
	})
}
