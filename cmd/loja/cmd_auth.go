package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lorenawear/loja/internal/domain"
)

var (
	authEmail    string
	authPassword string
	authName     string
	useGoogle    bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Iniciar sesión (email/password o Google)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var user *domain.Customer
		var err error
		if useGoogle {
			user, err = application.Auth.GoogleLogin(cmd.Context(), func(u string) {
				fmt.Println("Abrí esta URL en el navegador para autorizar:")
				fmt.Println("  " + u)
			})
		} else {
			user, err = application.Auth.Login(cmd.Context(), authEmail, authPassword)
		}
		if err != nil {
			return err
		}
		if user != nil {
			fmt.Printf("Sesión iniciada como %s <%s>\n", user.Name, user.Email)
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Crear una cuenta",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := application.Auth.Register(cmd.Context(), authName, authEmail, authPassword)
		if err != nil {
			return err
		}
		fmt.Printf("Cuenta creada: %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Cerrar sesión en este dispositivo",
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Auth.Logout()
		fmt.Println("Sesión cerrada.")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Mostrar el perfil de la sesión actual",
	RunE: func(cmd *cobra.Command, args []string) error {
		// primero el snapshot local, después el backend si responde
		user := application.Auth.CurrentUser()
		if fresh, err := application.Auth.RefreshProfile(cmd.Context()); err == nil {
			user = fresh
		}
		if user == nil {
			fmt.Println("No hay sesión activa.")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		if user.Phone != "" {
			fmt.Println(user.Phone)
		}
		return nil
	},
}

var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "Listar las direcciones guardadas de la cuenta",
	RunE: func(cmd *cobra.Command, args []string) error {
		addrs, err := application.API.Addresses(cmd.Context())
		if err != nil {
			return err
		}
		if len(addrs) == 0 {
			fmt.Println("No hay direcciones guardadas.")
			return nil
		}
		for _, a := range addrs {
			fmt.Printf("%s  %s, %s (%s) %s\n", a.ID, a.Street, a.City, a.State, a.Zip)
		}
		return nil
	},
}

var addressesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Borrar una dirección guardada",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.API.DeleteAddress(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Dirección borrada.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "password")
	loginCmd.Flags().BoolVar(&useGoogle, "google", false, "iniciar sesión con Google")
	registerCmd.Flags().StringVar(&authName, "name", "", "nombre")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "password")

	addressesCmd.AddCommand(addressesRemoveCmd)
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, meCmd, addressesCmd)
}
