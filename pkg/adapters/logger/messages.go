package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("fr", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Rendering %d products to %s":     "Rendu de %d produits vers %s",
		"Rendering product %s: %s":        "Rendu du produit %s : %s",
		"Clip saved to %s":                "Clip enregistré dans %s",
		"Caption saved to %s":             "Légende enregistrée dans %s",
		"Rendered %d/%d products":         "%d/%d produits rendus",
		"Interrupted, shutting down...":   "Interruption, arrêt en cours...",

		// Capture pipeline
		"Loading product image: %s":       "Chargement de l'image du produit : %s",
		"Recording %d frames at %d fps":   "Enregistrement de %d images à %d ips",
		"Recording finished: %d bytes":    "Enregistrement terminé : %d octets",

		// Transcode
		"Transcoding clip for product %s": "Transcodage du clip pour le produit %s",
		"Transcoded clip: %d bytes":       "Clip transcodé : %d octets",

		// Server
		"Listening on %s":                 "Écoute sur %s",
		"Server stopped":                  "Serveur arrêté",

		// Errors
		"Failed to render product %s: %s": "Échec du rendu du produit %s : %s",
		"Failed to load image: %s":        "Échec du chargement de l'image : %s",
		"Failed to transcode: %s":         "Échec du transcodage : %s",
		"Failed to write output: %s":      "Échec de l'écriture de la sortie : %s",
		"Failed to import catalog: %s":    "Échec de l'import du catalogue : %s",
	})
}
