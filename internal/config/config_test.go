package config

import "testing"

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Mongo: MongoConfig{URI: "mongodb://localhost:27017"}},
		Rendezvous: RendezvousConfig{KerberosKey: "secret"},
		Admin:      AdminConfig{APIKey: "admin-key"},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsMissingMongoURI(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Mongo.URI = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for a missing MONGO_URI")
	}
}

func TestValidateRejectsMissingKerberosKey(t *testing.T) {
	cfg := validConfig()
	cfg.Rendezvous.KerberosKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for a missing Kerberos key")
	}
}

func TestValidateRejectsMissingAdminAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Admin.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for a missing admin API key")
	}
}

func TestDefaultCollectionNamesAreAllSet(t *testing.T) {
	names := defaultCollectionNames()
	fields := []string{
		names.Gatherings, names.Tournaments, names.TournamentScore,
		names.RankingScore, names.CommonData, names.Datastore,
		names.Sessions, names.Counters, names.ServerStatus,
	}
	for i, f := range fields {
		if f == "" {
			t.Fatalf("default collection name %d is empty", i)
		}
	}
}
