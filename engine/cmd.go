/*
 * This file is part of hh-records-logic.
 *
 * hh-records-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * hh-records-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with hh-records-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/healthhub/hh-records-logic/pkg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// cmd returns the root command with the records subcommands. connect is called before a subcommand
// talks to the chain or the pinning service.
func cmd(client pkg.RecordsLogicClient, connect func() error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hh-records-logic",
		Short: "patient health records on a registry contract and IPFS pinning",
	}
	cmd.PersistentFlags().StringP(ConfOutput, "o", "yaml", "output format of the subcommands: yaml or json")

	run := func(action func(cmd *cobra.Command, args []string) (interface{}, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := connect(); err != nil {
				return err
			}
			result, err := action(cmd, args)
			if err != nil {
				return err
			}
			return render(cmd, result)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "patients",
		Short: "List all registered patients",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			return client.ListPatients(cmd.Context())
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "patient [subjectId]",
		Short: "Show the registry entry of a patient",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			return client.PatientDetails(cmd.Context(), args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "records [subjectId]",
		Short: "Show the reconciled on-chain and pinned records of a patient",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			return client.ReconcileRecords(cmd.Context(), args[0])
		}),
	})

	upload := &cobra.Command{
		Use:   "upload [subjectId] [file]",
		Short: "Pin a file and add it to the records of a patient",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return nil, err
			}
			request := pkg.UploadRequest{SubjectID: args[0], FileName: filepath.Base(args[1]), Content: content}
			request.Description, _ = cmd.Flags().GetString("description")
			request.Author, _ = cmd.Flags().GetString("author")
			request.PatientWallet, _ = cmd.Flags().GetString("patient-wallet")
			return client.UploadRecord(cmd.Context(), pkg.NewFlow(), request)
		}),
	}
	upload.Flags().String("description", pkg.DefaultUploadDescription, "record description")
	upload.Flags().String("author", "", "author wallet address, defaults to the signer")
	upload.Flags().String("patient-wallet", "", "wallet address of the patient, when it differs from the registry")
	cmd.AddCommand(upload)

	cmd.AddCommand(&cobra.Command{
		Use:   "grant [subjectId] [doctorId]",
		Short: "Grant a doctor access to the records of a patient",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			flow := pkg.NewFlow()
			err := client.GrantPermission(cmd.Context(), flow, pkg.GrantRequest{PatientID: args[0], DoctorID: args[1]})
			return flow.Status(), err
		}),
	})

	prescribe := &cobra.Command{
		Use:   "prescribe [subjectId]",
		Short: "Add a diagnosis and prescription to the records of a patient",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			request := pkg.PrescriptionRequest{SubjectID: args[0]}
			request.Diagnosis, _ = cmd.Flags().GetString("diagnosis")
			request.Prescription, _ = cmd.Flags().GetString("prescription")
			flow := pkg.NewFlow()
			err := client.CreatePrescription(cmd.Context(), flow, request)
			return flow.Status(), err
		}),
	}
	prescribe.Flags().String("diagnosis", "", "diagnosis text")
	prescribe.Flags().String("prescription", "", "prescription text")
	cmd.AddCommand(prescribe)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove-patient [subjectId]",
		Short: "Remove a patient from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			return map[string]string{"removed": args[0]}, client.RemovePatient(cmd.Context(), args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete-record [subjectId] [index]",
		Short: "Delete an on-chain record and unpin its file when no other record uses it",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			index, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid record index %q", args[1])
			}
			return client.DeleteRecord(cmd.Context(), args[0], index)
		}),
	})

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Unpin uploads that were never added on-chain",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, args []string) (interface{}, error) {
			grace, _ := cmd.Flags().GetDuration("grace")
			return client.SweepOrphans(cmd.Context(), grace)
		}),
	}
	sweep.Flags().Duration("grace", pkg.DefaultSweepGrace, "minimum age of a pin before it is considered orphaned")
	cmd.AddCommand(sweep)

	return cmd
}

func render(cmd *cobra.Command, value interface{}) error {
	format := viper.GetString(ConfOutput)
	if flag := cmd.Flags().Lookup(ConfOutput); flag != nil && flag.Changed {
		format = flag.Value.String()
	}
	var (
		out []byte
		err error
	)
	switch format {
	case "json":
		out, err = json.MarshalIndent(value, "", "  ")
		out = append(out, '\n')
	case "yaml", "":
		out, err = yaml.Marshal(value)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
